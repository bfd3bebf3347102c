// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package memblob

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deptofdefense/blobvfs/pkg/blob"
)

type object struct {
	data       []byte
	properties blob.Properties
	parts      int
}

// Store holds the containers of a single in-memory account.
type Store struct {
	// AccountKey, if set, must match the key of every client.
	AccountKey string
	// AutoCreateContainers creates a container the first time it is referenced.
	AutoCreateContainers bool
	mutex                *sync.RWMutex
	containers           map[string]map[string]*object
	failures             map[string]error
	copies               int
}

func NewStore() *Store {
	return &Store{
		mutex:      &sync.RWMutex{},
		containers: map[string]map[string]*object{},
		failures:   map[string]error{},
	}
}

func failureKey(container string, key string) string {
	return container + "/" + key
}

func newObject(data []byte, contentType string, parts int) *object {
	return &object{
		data: data,
		properties: blob.Properties{
			Size:         int64(len(data)),
			LastModified: time.Now().UTC(),
			ContentType:  contentType,
			ETag:         fmt.Sprintf("%q", fmt.Sprintf("%x", md5.Sum(data))),
		},
		parts: parts,
	}
}

func (s *Store) CreateContainer(name string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.containers[name]; !ok {
		s.containers[name] = map[string]*object{}
	}
}

func (s *Store) hasContainer(name string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.containers[name]; ok {
		return true
	}
	if s.AutoCreateContainers {
		s.containers[name] = map[string]*object{}
		return true
	}
	return false
}

// Put stores the data as a single part, creating the container if needed.
func (s *Store) Put(container string, key string, data []byte, contentType string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.containers[container]; !ok {
		s.containers[container] = map[string]*object{}
	}
	s.containers[container][key] = newObject(append([]byte{}, data...), contentType, 1)
}

func (s *Store) Get(container string, key string) ([]byte, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	obj, ok := s.containers[container][key]
	if !ok {
		return nil, false
	}
	return append([]byte{}, obj.data...), true
}

func (s *Store) ContentType(container string, key string) string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if obj, ok := s.containers[container][key]; ok {
		return obj.properties.ContentType
	}
	return ""
}

// Parts returns the number of blocks the blob was uploaded in.
func (s *Store) Parts(container string, key string) int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if obj, ok := s.containers[container][key]; ok {
		return obj.parts
	}
	return 0
}

// Keys returns the sorted keys of every blob in the container.
func (s *Store) Keys(container string) []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	keys := make([]string, 0, len(s.containers[container]))
	for k := range s.containers[container] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FailWrites makes every upload or copy into the blob fail with err.  A nil err clears the failure.
func (s *Store) FailWrites(container string, key string, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err == nil {
		delete(s.failures, failureKey(container, key))
		return
	}
	s.failures[failureKey(container, key)] = err
}

// Copies returns the number of server-side copies completed by the store.
func (s *Store) Copies() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.copies
}

func (s *Store) failure(container string, key string) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.failures[failureKey(container, key)]
}

func (s *Store) commit(container string, key string, obj *object) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	c, ok := s.containers[container]
	if !ok {
		return fmt.Errorf("container %q: %w", container, blob.ErrNotFound)
	}
	c[key] = obj
	return nil
}

func (s *Store) object(container string, key string) (*object, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	obj, ok := s.containers[container][key]
	return obj, ok
}

func (s *Store) remove(container string, key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.containers[container][key]; !ok {
		return false
	}
	delete(s.containers[container], key)
	return true
}

func (s *Store) list(container string, prefix string, maxResults int) []blob.ListItem {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0)
	for k := range s.containers[container] {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	items := make([]blob.ListItem, 0)
	seen := map[string]struct{}{}
	for _, k := range keys {
		if maxResults > 0 && len(items) == maxResults {
			break
		}
		rest := k[len(prefix):]
		if i := strings.Index(rest, "/"); i != -1 {
			p := prefix + rest[:i+1]
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			items = append(items, blob.ListItem{Key: p, Kind: blob.KindPrefix})
			continue
		}
		obj := s.containers[container][k]
		items = append(items, blob.ListItem{
			Key:          k,
			Kind:         blob.KindBlob,
			Size:         obj.properties.Size,
			LastModified: obj.properties.LastModified,
		})
	}
	return items
}

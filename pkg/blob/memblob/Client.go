// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package memblob

import (
	"context"
	"errors"
	"fmt"

	"github.com/deptofdefense/blobvfs/pkg/blob"
	"github.com/deptofdefense/blobvfs/pkg/log"
)

var (
	ErrAuthentication = errors.New("authentication failed")
)

type Client struct {
	account    string
	accountKey string
	options    blob.Options
	store      *Store
	logger     *log.SimpleLogger
}

func (c *Client) Account() string {
	return c.account
}

func (c *Client) Options() blob.Options {
	return c.options
}

func (c *Client) Store() *Store {
	return c.store
}

func (c *Client) log(msg string, fields map[string]interface{}) {
	if c.options.Verbose {
		_ = c.logger.Log(msg, fields)
	}
}

func (c *Client) Container(ctx context.Context, name string) (blob.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(c.store.AccountKey) > 0 && c.accountKey != c.store.AccountKey {
		return nil, fmt.Errorf("error accessing account %q: %w", c.account, ErrAuthentication)
	}
	if !c.store.hasContainer(name) {
		return nil, fmt.Errorf("container %q: %w", name, blob.ErrNotFound)
	}
	c.log("Container", map[string]interface{}{"account": c.account, "container": name})
	return &Container{client: c, name: name}, nil
}

func (c *Client) Close() error {
	return nil
}

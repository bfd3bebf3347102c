// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package vfs

type Capability string

const (
	CapabilityGetType              Capability = "get-type"
	CapabilityReadContent          Capability = "read-content"
	CapabilityAppendContent        Capability = "append-content"
	CapabilityURI                  Capability = "uri"
	CapabilityAttributes           Capability = "attributes"
	CapabilityRandomAccessRead     Capability = "random-access-read"
	CapabilityListChildren         Capability = "list-children"
	CapabilityDirectoryReadContent Capability = "directory-read-content"
	CapabilityLastModified         Capability = "last-modified"
	CapabilityGetLastModified      Capability = "get-last-modified"
	CapabilityCreate               Capability = "create"
	CapabilityDelete               Capability = "delete"
)

// CapabilitySet is an immutable set of capabilities declared by a provider.
type CapabilitySet struct {
	capabilities []Capability
}

func NewCapabilitySet(capabilities ...Capability) CapabilitySet {
	set := CapabilitySet{capabilities: make([]Capability, 0, len(capabilities))}
	for _, c := range capabilities {
		if !set.Has(c) {
			set.capabilities = append(set.capabilities, c)
		}
	}
	return set
}

func (s CapabilitySet) Has(c Capability) bool {
	for _, x := range s.capabilities {
		if x == c {
			return true
		}
	}
	return false
}

// List returns a copy of the capabilities in declaration order.
func (s CapabilitySet) List() []Capability {
	return append([]Capability{}, s.capabilities...)
}

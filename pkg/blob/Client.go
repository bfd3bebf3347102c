// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

import (
	"context"
)

// Client is an authenticated connection to the containers of a single account.
// A Client is safe for concurrent use.
type Client interface {
	// Account returns the identity of the account, used to decide if two clients can copy between each other.
	Account() string
	Options() Options
	// Container checks that the container exists and returns a reference to it.
	Container(ctx context.Context, name string) (Container, error)
	Close() error
}

type ClientFactory interface {
	NewClient(ctx context.Context, host string, creds Credentials, options Options) (Client, error)
}

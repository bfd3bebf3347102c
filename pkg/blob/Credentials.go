// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

type Credentials struct {
	AccountName  string
	AccountKey   string
	SessionToken string
}

// Zero drops the references to the key material.
func (c *Credentials) Zero() {
	if c == nil {
		return
	}
	c.AccountName = ""
	c.AccountKey = ""
	c.SessionToken = ""
}

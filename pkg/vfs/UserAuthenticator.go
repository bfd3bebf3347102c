// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package vfs

type AuthDataType string

const (
	AuthDomain   AuthDataType = "domain"
	AuthUserName AuthDataType = "username"
	AuthPassword AuthDataType = "password"
)

// AuthData holds credential material returned by an authenticator.
// Cleanup should be called as soon as the credentials are no longer needed.
type AuthData struct {
	data map[AuthDataType][]byte
}

func NewAuthData() *AuthData {
	return &AuthData{data: map[AuthDataType][]byte{}}
}

func (a *AuthData) Set(t AuthDataType, value []byte) {
	a.data[t] = append([]byte{}, value...)
}

// Get returns the value for t.  Get on a nil AuthData returns nil.
func (a *AuthData) Get(t AuthDataType) []byte {
	if a == nil {
		return nil
	}
	return a.data[t]
}

// GetString returns the value for t, or fallback if t is not set.
func (a *AuthData) GetString(t AuthDataType, fallback string) string {
	if v := a.Get(t); len(v) > 0 {
		return string(v)
	}
	return fallback
}

// Cleanup zeroes all credential material.  It is safe to call on a nil AuthData.
func (a *AuthData) Cleanup() {
	if a == nil {
		return
	}
	for t, v := range a.data {
		for i := range v {
			v[i] = 0
		}
		delete(a.data, t)
	}
}

type UserAuthenticator interface {
	// RequestAuthentication returns the requested credentials, or nil if none are available.
	RequestAuthentication(types []AuthDataType) (*AuthData, error)
}

type StaticUserAuthenticator struct {
	Domain   string
	UserName string
	Password string
}

func (s *StaticUserAuthenticator) RequestAuthentication(types []AuthDataType) (*AuthData, error) {
	data := NewAuthData()
	for _, t := range types {
		value := ""
		switch t {
		case AuthDomain:
			value = s.Domain
		case AuthUserName:
			value = s.UserName
		case AuthPassword:
			value = s.Password
		}
		if len(value) > 0 {
			data.Set(t, []byte(value))
		}
	}
	return data, nil
}

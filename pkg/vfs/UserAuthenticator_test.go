// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthDataCleanup(t *testing.T) {
	data := NewAuthData()
	data.Set(AuthPassword, []byte("secret"))
	password := data.Get(AuthPassword)
	assert.Equal(t, "secret", data.GetString(AuthPassword, "fallback"))

	data.Cleanup()
	assert.Equal(t, make([]byte, 6), password)
	assert.Nil(t, data.Get(AuthPassword))
	assert.Equal(t, "fallback", data.GetString(AuthPassword, "fallback"))

	var missing *AuthData
	missing.Cleanup()
	assert.Equal(t, "fallback", missing.GetString(AuthUserName, "fallback"))
}

func TestStaticUserAuthenticator(t *testing.T) {
	authenticator := &StaticUserAuthenticator{UserName: "user", Password: "secret"}
	data, err := authenticator.RequestAuthentication([]AuthDataType{AuthUserName, AuthPassword, AuthDomain})
	require.NoError(t, err)
	assert.Equal(t, "user", data.GetString(AuthUserName, ""))
	assert.Equal(t, "secret", data.GetString(AuthPassword, ""))
	assert.Nil(t, data.Get(AuthDomain))

	data, err = authenticator.RequestAuthentication([]AuthDataType{AuthUserName})
	require.NoError(t, err)
	assert.Nil(t, data.Get(AuthPassword))
}

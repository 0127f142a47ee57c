package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	id, err := Static{UserID: "u1"}.CheckLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Identity{LoggedIn: true, UserID: "u1"}, id)

	id, err = Anonymous.CheckLogin(context.Background())
	require.NoError(t, err)
	assert.False(t, id.LoggedIn)
}

func TestTokenContext(t *testing.T) {
	assert.Equal(t, "", TokenFromContext(context.Background()))
	assert.Equal(t, "abc", TokenFromContext(WithToken(context.Background(), "abc")))
}

func TestJWTChecker(t *testing.T) {
	valid, err := Sign("secret", "u1", time.Hour)
	require.NoError(t, err)
	wrongKey, err := Sign("other", "u1", time.Hour)
	require.NoError(t, err)
	expired, err := Sign("secret", "u1", -time.Hour)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    Identity
		wantErr bool
	}{
		{"no token", "", Identity{}, false},
		{"valid", valid, Identity{LoggedIn: true, UserID: "u1"}, false},
		{"wrong key", wrongKey, Identity{}, true},
		{"expired", expired, Identity{}, true},
		{"no subject", noSubject, Identity{}, true},
		{"garbage", "not.a.jwt", Identity{}, true},
	}

	checker := NewJWTChecker("secret")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CheckLogin(WithToken(context.Background(), tt.token))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

package session

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestResolver() *Resolver {
	return NewResolver(zap.NewNop())
}

func makeToken(t *testing.T, payload any) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString(raw) + ".signature"
}

func TestResolve_MalformedTokens(t *testing.T) {
	r := newTestResolver()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	cases := map[string]string{
		"empty":            "",
		"no separators":    "not-a-token",
		"two segments":     header + ".eyJzdWIiOiJ4In0",
		"bad base64":       header + ".!!!not-base64!!!.sig",
		"non-json payload": header + "." + base64.RawURLEncoding.EncodeToString([]byte("hello")) + ".sig",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, r.Resolve(token))
		})
	}
}

func TestResolve_MissingRequiredClaims(t *testing.T) {
	r := newTestResolver()

	assert.Nil(t, r.Resolve(makeToken(t, map[string]any{"email": "a@b.com"})), "no subject")
	assert.Nil(t, r.Resolve(makeToken(t, map[string]any{"sub": "user-1"})), "no email")
}

func TestResolve_ValidToken(t *testing.T) {
	r := newTestResolver()

	token := makeToken(t, map[string]any{
		"sub":   "user-1",
		"email": "jin@example.com",
		"user_metadata": map[string]any{
			"nickname":   "합격러",
			"avatar_url": "https://example.com/a.png",
		},
	})
	user := r.Resolve(token)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "jin@example.com", user.Email)
	require.NotNil(t, user.Nickname)
	assert.Equal(t, "합격러", *user.Nickname)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, "https://example.com/a.png", *user.AvatarURL)
}

func TestResolve_NicknamePriority(t *testing.T) {
	r := newTestResolver()

	cases := []struct {
		name     string
		metadata map[string]any
		want     string
	}{
		{"nickname wins", map[string]any{"nickname": "닉", "full_name": "Jin Park", "name": "jin"}, "닉"},
		{"full name next", map[string]any{"full_name": "Jin Park", "name": "jin"}, "Jin Park"},
		{"plain name next", map[string]any{"name": "jin"}, "jin"},
		{"email local part last", map[string]any{}, "jin.park"},
		{"blank nickname skipped", map[string]any{"nickname": "   ", "full_name": "Jin Park"}, "Jin Park"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := makeToken(t, map[string]any{
				"sub":           "user-1",
				"email":         "jin.park@example.com",
				"user_metadata": tc.metadata,
			})
			user := r.Resolve(token)
			require.NotNil(t, user)
			require.NotNil(t, user.Nickname)
			assert.Equal(t, tc.want, *user.Nickname)
		})
	}
}

func TestResolve_AvatarDefaultsToNil(t *testing.T) {
	r := newTestResolver()

	token := makeToken(t, map[string]any{"sub": "user-1", "email": "jin@example.com"})
	user := r.Resolve(token)
	require.NotNil(t, user)
	assert.Nil(t, user.AvatarURL)
}

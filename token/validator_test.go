package token_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-tenant-client/token"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newValidator() *token.Validator {
	return token.NewValidator(token.WithNowTime(func() time.Time { return fixedNow }))
}

func segment(v any) string {
	data, _ := json.Marshal(v)
	return base64.RawURLEncoding.EncodeToString(data)
}

// makeToken builds an unsigned JWT-shaped token with the given claims.
func makeToken(claims map[string]any) string {
	header := segment(map[string]any{"alg": "HS256", "typ": "JWT"})
	return header + "." + segment(claims) + ".signature"
}

func TestValidator_IsExpired(t *testing.T) {
	v := newValidator()

	t.Run("future exp is not expired", func(t *testing.T) {
		tok := makeToken(map[string]any{"exp": fixedNow.Add(time.Hour).Unix()})
		require.False(t, v.IsExpired(tok))
	})

	t.Run("past exp is expired", func(t *testing.T) {
		tok := makeToken(map[string]any{"exp": fixedNow.Add(-time.Hour).Unix()})
		require.True(t, v.IsExpired(tok))
	})

	t.Run("exp exactly now is expired", func(t *testing.T) {
		tok := makeToken(map[string]any{"exp": fixedNow.Unix()})
		require.True(t, v.IsExpired(tok))
	})

	t.Run("epoch second one is expired", func(t *testing.T) {
		tok := makeToken(map[string]any{"exp": 1})
		require.True(t, v.IsExpired(tok))
	})

	t.Run("missing exp is expired", func(t *testing.T) {
		tok := makeToken(map[string]any{"sub": "user@example.com"})
		require.True(t, v.IsExpired(tok))
	})

	t.Run("not three segments is expired", func(t *testing.T) {
		require.True(t, v.IsExpired("justonesegment"))
		require.True(t, v.IsExpired("two.segments"))
	})

	t.Run("non-base64 payload is expired", func(t *testing.T) {
		header := segment(map[string]any{"alg": "HS256", "typ": "JWT"})
		require.True(t, v.IsExpired(header+".!!!not-base64!!!.sig"))
	})

	t.Run("non-JSON payload is expired", func(t *testing.T) {
		header := segment(map[string]any{"alg": "HS256", "typ": "JWT"})
		payload := base64.RawURLEncoding.EncodeToString([]byte("plain text"))
		require.True(t, v.IsExpired(header+"."+payload+".sig"))
	})

	t.Run("empty token is expired", func(t *testing.T) {
		require.True(t, v.IsExpired(""))
	})
}

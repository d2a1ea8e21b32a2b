package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schadenscheck/admin-api/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef" // exactly MinSecretLen

func TestNewTokenCodec_RejectsShortSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		ok     bool
	}{
		{name: "empty", secret: "", ok: false},
		{name: "twenty chars", secret: strings.Repeat("x", 20), ok: false},
		{name: "one short", secret: strings.Repeat("x", MinSecretLen-1), ok: false},
		{name: "minimum", secret: testSecret, ok: true},
		{name: "longer", secret: testSecret + "-and-then-some", ok: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			codec, err := NewTokenCodec(tc.secret, time.Hour)
			if tc.ok {
				require.NoError(t, err)
				require.NotNil(t, codec)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "32")
			}
		})
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec, err := NewTokenCodec(testSecret, time.Hour)
	require.NoError(t, err)

	want := model.Principal{Username: "admin1", Role: model.RoleAdmin}
	token, err := codec.Issue(want)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, ok := codec.Verify(token)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestTokenCodec_RejectsExpiredToken(t *testing.T) {
	// A negative lifetime produces a token that is already expired while
	// its signature is still valid.
	expired, err := NewTokenCodec(testSecret, -time.Minute)
	require.NoError(t, err)

	token, err := expired.Issue(model.Principal{Username: "admin1", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, ok := expired.Verify(token)
	assert.False(t, ok)
}

func TestTokenCodec_RejectsForeignSecret(t *testing.T) {
	issuer, err := NewTokenCodec(testSecret, time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenCodec("ffffffffffffffffffffffffffffffff", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(model.Principal{Username: "admin1", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, ok := verifier.Verify(token)
	assert.False(t, ok)
}

func TestTokenCodec_RejectsMalformedTokens(t *testing.T) {
	codec, err := NewTokenCodec(testSecret, time.Hour)
	require.NoError(t, err)

	for _, raw := range []string{
		"",
		"not-a-jwt",
		"a.b.c",
		"eyJhbGciOiJub25lIn0.eyJzdWIiOiJhZG1pbjEifQ.", // alg "none"
	} {
		_, ok := codec.Verify(raw)
		assert.False(t, ok, "token %q must not verify", raw)
	}
}

func TestTokenCodec_RejectsTamperedToken(t *testing.T) {
	codec, err := NewTokenCodec(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := codec.Issue(model.Principal{Username: "admin1", Role: model.RoleAdmin})
	require.NoError(t, err)

	// Flip a character in the payload segment; the signature no longer matches.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, ok := codec.Verify(tampered)
	assert.False(t, ok)
}

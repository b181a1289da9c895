package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec("super-secret")
	want := Claim{AccountID: 42, Email: "ann@x.com"}

	tok, err := codec.Sign(want)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSign_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewCodec("").Sign(Claim{AccountID: 1})
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewCodec("right-secret").Sign(Claim{AccountID: 7, Email: "u@x.com"})
	require.NoError(t, err)

	_, err = NewCodec("wrong-secret").Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Tampered(t *testing.T) {
	t.Parallel()

	codec := NewCodec("secret")
	tok, err := codec.Sign(Claim{AccountID: 7, Email: "u@x.com"})
	require.NoError(t, err)

	_, err = codec.Verify(tok + "x")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"", "not.a.jwt", "a.b"} {
		_, err := NewCodec("secret").Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", bad)
	}
}

func TestClaim_Owns(t *testing.T) {
	t.Parallel()

	assert.True(t, Claim{AccountID: 5}.Owns(5))
	assert.False(t, Claim{AccountID: 5}.Owns(6))
	assert.False(t, Claim{}.Owns(0)) // zero claim never owns anything
}

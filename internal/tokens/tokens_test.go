package tokens

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	userID := uuid.New()

	token, err := Issue(userID, secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := Parse(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Issue(uuid.New(), []byte("secret-a"))
	require.NoError(t, err)

	parsed, err := Parse(token, []byte("secret-b"))
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, uuid.Nil, parsed)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		parsed, err := Parse(raw, []byte("secret"))
		require.ErrorIs(t, err, ErrInvalidToken)
		assert.Equal(t, uuid.Nil, parsed)
	}
}

func TestParse_NonUUIDSubject(t *testing.T) {
	t.Parallel()

	// A correctly signed token whose subject is not a uuid must still
	// be rejected.
	secret := []byte("secret")
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "not-a-uuid",
	}).SignedString(secret)
	require.NoError(t, err)

	parsed, err := Parse(raw, secret)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, uuid.Nil, parsed)
}

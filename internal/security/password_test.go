package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	cred, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse battery staple", cred))
	assert.False(t, VerifyPassword("correct horse battery stapl", cred))
	assert.False(t, VerifyPassword("", cred))
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	a, err := HashPassword("same password")
	require.NoError(t, err)
	b, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, VerifyPassword("same password", a))
	assert.True(t, VerifyPassword("same password", b))
}

func TestHashPassword_Format(t *testing.T) {
	cred, err := HashPassword("pw")
	require.NoError(t, err)

	parts := strings.Split(cred, "$")
	require.Len(t, parts, 4)
	assert.Equal(t, "pbkdf2-sha256", parts[0])
	assert.Equal(t, "120000", parts[1])
	assert.Len(t, parts[2], 32) // 16 salt bytes hex-encoded
	assert.Len(t, parts[3], 64) // 32 key bytes hex-encoded
}

func TestVerifyPassword_HonorsStoredIterations(t *testing.T) {
	cred, err := HashPassword("pw")
	require.NoError(t, err)

	// Rewrite the credential as if it were produced under an older,
	// cheaper setting. Verification must replay the stored count, so
	// the rewritten credential no longer matches.
	legacy := strings.Replace(cred, "$120000$", "$1000$", 1)
	assert.False(t, VerifyPassword("pw", legacy))
}

func TestVerifyPassword_Malformed(t *testing.T) {
	cases := []string{
		"",
		"pw",
		"bcrypt$10$abcd$efgh",
		"pbkdf2-sha256$notanumber$aa$bb",
		"pbkdf2-sha256$-1$aa$bb",
		"pbkdf2-sha256$120000$zz$bb",
		"pbkdf2-sha256$120000$aa$zz",
		"pbkdf2-sha256$120000$aa",
		"pbkdf2-sha256$120000$$",
	}
	for _, c := range cases {
		assert.False(t, VerifyPassword("pw", c), "credential %q must not verify", c)
	}
}

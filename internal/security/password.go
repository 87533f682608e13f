package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordAlg        = "pbkdf2-sha256"
	passwordIterations = 120000
	passwordSaltLen    = 16
	passwordKeyLen     = 32
)

// HashPassword derives a storable credential from a plaintext password.
// Output format: pbkdf2-sha256$<iterations>$<hex salt>$<hex key>.
// Each call uses a fresh salt, so two hashes of the same password
// never match.
func HashPassword(password string) (string, error) {
	salt := make([]byte, passwordSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, passwordIterations, passwordKeyLen, sha256.New)

	return fmt.Sprintf("%s$%d$%s$%s",
		passwordAlg,
		passwordIterations,
		hex.EncodeToString(salt),
		hex.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches the stored
// credential. The derivation is replayed with the credential's own
// salt and iteration count, not the current defaults, so hashes made
// under older parameters keep verifying. Malformed or unrecognized
// credentials verify as false; this never panics or errors outward.
func VerifyPassword(password, credential string) bool {
	parts := strings.Split(credential, "$")
	if len(parts) != 4 || parts[0] != passwordAlg {
		return false
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := hex.DecodeString(parts[2])
	if err != nil || len(salt) == 0 {
		return false
	}

	want, err := hex.DecodeString(parts[3])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)

	return subtle.ConstantTimeCompare(got, want) == 1
}

package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// DummyHash returns a bcrypt hash of a throwaway value at the given cost.
// The authenticator compares unknown usernames against it so that a failed
// lookup still pays one full hash comparison.  The hashed value itself is
// irrelevant; no submitted password ever matches it because callers discard
// the comparison result when the lookup found nothing.
func DummyHash(cost int) (string, error) {
	return HashPassword("schadenscheck-dummy-credential", cost)
}

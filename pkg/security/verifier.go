package security

import (
	"crypto/subtle"

	"github.com/bookhaven/bookstore/pkg/config"
)

// Verifier abstracts how credentials are stored and checked. The account
// store is written against this interface so the storage format can change
// without touching registration or login logic.
type Verifier interface {
	// Encode transforms a raw password into its stored representation.
	Encode(password string) (string, error)
	// Verify reports whether the raw password matches the stored value.
	Verify(password, stored string) (bool, error)
}

// NewVerifier selects the verifier for the configured credential scheme.
func NewVerifier(cfg config.SecurityConfig) Verifier {
	if cfg.CredentialScheme == config.CredentialSchemeArgon2ID {
		return Argon2ID{cfg: cfg}
	}
	return Plaintext{}
}

// Plaintext stores and compares the password as given. It keeps legacy user
// rows readable; prefer Argon2ID for any new deployment.
type Plaintext struct{}

func (Plaintext) Encode(password string) (string, error) {
	return password, nil
}

func (Plaintext) Verify(password, stored string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1, nil
}

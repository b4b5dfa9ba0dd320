// Package secrets implements the credential store: one-way password
// hashing for collaborator accounts and the reversible authenticated
// codec protecting client PII at rest.
package secrets

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plain text password with bcrypt at the default
// cost. The result embeds its own salt and cost parameter.
func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

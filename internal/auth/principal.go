// Package auth turns credentials and session tokens into a Principal:
// the authenticated caller's identity and role for the current call.
package auth

import "github.com/diewo77/go-crm/internal/models"

// Principal is transient and rebuilt from the durable user record on
// every authorization check; it is never persisted. An empty Role
// means the collaborator has no role assigned and therefore zero
// permissions.
type Principal struct {
	ID    uint
	Email string
	Role  string
}

// PrincipalFromUser derives a Principal from a loaded user record.
// The Role association must have been preloaded.
func PrincipalFromUser(u *models.User) *Principal {
	return &Principal{ID: u.ID, Email: u.Email, Role: u.RoleName()}
}

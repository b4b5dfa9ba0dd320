package policy

import (
	"context"
	"strconv"

	"github.com/diewo77/go-crm/internal/apperr"
	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/rbac"
	"github.com/diewo77/go-crm/internal/secrets"
	"github.com/diewo77/go-crm/internal/store"
)

// CreateUser creates a collaborator account with a hashed password.
func (e *Engine) CreateUser(ctx context.Context, p *auth.Principal, in UserInput) (*models.User, error) {
	var user *models.User
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		if err := e.requirePermission(ctx, tx, p, rbac.PermUserWrite); err != nil {
			return err
		}

		if in.Email == "" {
			return apperr.BusinessRule("collaborator email is required")
		}
		if _, err := tx.GetUserByEmail(ctx, in.Email); err == nil {
			return apperr.BusinessRule("a collaborator with email %s already exists", in.Email)
		} else if !apperr.IsKind(err, apperr.KindNotFound) {
			return err
		}

		password := in.Password
		if password == "" {
			password = "changeme"
		}
		hash, err := secrets.HashPassword(password)
		if err != nil {
			return err
		}

		user = &models.User{
			Email:          in.Email,
			FullName:       in.FullName,
			PasswordHash:   hash,
			EmployeeNumber: in.EmployeeNumber,
		}
		if in.RoleName != "" {
			role, err := tx.GetRoleByName(ctx, in.RoleName)
			if err != nil {
				return err
			}
			user.RoleID = &role.ID
		}
		return tx.CreateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().Str("email", user.Email).Str("by", p.Email).Msg("collaborator created")
	return user, nil
}

// UpdateUser applies a change set to a collaborator: identity fields,
// password (rehashed) and role assignment. The new role takes effect
// on the target's next resolved call, since roles are re-read every
// time.
func (e *Engine) UpdateUser(ctx context.Context, p *auth.Principal, userID uint, ch UserChanges) (*models.User, error) {
	var user *models.User
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		if err := e.requirePermission(ctx, tx, p, rbac.PermUserWrite); err != nil {
			return err
		}

		var err error
		user, err = tx.GetUser(ctx, userID)
		if err != nil {
			return err
		}

		if ch.Email != nil {
			user.Email = *ch.Email
		}
		if ch.FullName != nil {
			user.FullName = *ch.FullName
		}
		if ch.EmployeeNumber != nil {
			user.EmployeeNumber = ch.EmployeeNumber
		}
		if ch.Password != nil {
			hash, err := secrets.HashPassword(*ch.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		if ch.RoleName != nil {
			role, err := tx.GetRoleByName(ctx, *ch.RoleName)
			if err != nil {
				return err
			}
			user.RoleID = &role.ID
			user.Role = role
		}
		return tx.SaveUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().Str("email", user.Email).Str("by", p.Email).Msg("collaborator updated")
	return user, nil
}

// DeleteUser removes a collaborator. Self-deletion is refused before
// anything else so the caller gets the specific reason rather than a
// generic denial; owned entities keep existing with a cleared owner.
func (e *Engine) DeleteUser(ctx context.Context, p *auth.Principal, userID uint) error {
	var email string
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		if p == nil {
			return apperr.NotAuthenticated()
		}
		if p.ID == userID {
			return apperr.BusinessRule("you cannot delete your own account")
		}
		if err := e.requirePermission(ctx, tx, p, rbac.PermUserDelete); err != nil {
			return err
		}

		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		email = user.Email

		return tx.DeleteUser(ctx, userID)
	})
	if err != nil {
		return err
	}
	e.log.Warn().
		Str("email", email).
		Str("collaborator_id", strconv.FormatUint(uint64(userID), 10)).
		Str("by", p.Email).
		Msg("collaborator deleted")
	return nil
}

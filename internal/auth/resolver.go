package auth

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-crm/internal/apperr"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/secrets"
)

// Resolver authenticates credentials and resolves session tokens to
// principals. The role is rehydrated from the current role assignment
// on every resolve: a role change takes effect immediately, whatever
// the token was issued with.
type Resolver struct {
	db     *gorm.DB
	tokens *TokenManager
	log    zerolog.Logger
}

// NewResolver creates a resolver over the given database and token
// manager.
func NewResolver(db *gorm.DB, tokens *TokenManager, log zerolog.Logger) *Resolver {
	return &Resolver{db: db, tokens: tokens, log: log}
}

// Authenticate verifies email and password and issues a session token.
// Unknown email and wrong password fail identically so login errors
// reveal nothing about account existence.
func (r *Resolver) Authenticate(ctx context.Context, email, password string) (*Principal, string, error) {
	if email == "" || password == "" {
		return nil, "", apperr.InvalidCredentials()
	}

	var user models.User
	err := r.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		r.log.Warn().Str("email", email).Msg("failed login attempt")
		return nil, "", apperr.InvalidCredentials()
	}
	if err != nil {
		return nil, "", err
	}

	if !secrets.VerifyPassword(password, user.PasswordHash) {
		r.log.Warn().Str("email", email).Msg("failed login attempt")
		return nil, "", apperr.InvalidCredentials()
	}

	token, err := r.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	r.log.Info().Str("email", email).Msg("user logged in")
	return PrincipalFromUser(&user), token, nil
}

// Resolve validates a session token and rebuilds the Principal from
// the owning user record. Failure modes are distinct so the caller can
// react appropriately: NotAuthenticated (no token), SessionExpired,
// TokenInvalid, PrincipalGone (subject deleted since issuance).
func (r *Resolver) Resolve(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, apperr.NotAuthenticated()
	}

	userID, err := r.tokens.Subject(token)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.db.WithContext(ctx).Preload("Role").First(&user, userID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.PrincipalGone(strconv.FormatUint(uint64(userID), 10))
	}
	if err != nil {
		return nil, err
	}

	return PrincipalFromUser(&user), nil
}

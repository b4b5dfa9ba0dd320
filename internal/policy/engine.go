// Package policy is the authorization core. The Engine composes the
// permission catalog, the ownership resolver and per-entity business
// rules into one decision per (principal, action, entity, payload),
// and applies the approved change set inside a single transaction.
//
// Every entry point follows the same pipeline, short-circuiting at the
// first failing stage:
//
//  1. identity   - principal must be non-nil
//  2. permission - role must hold the base permission code
//  3. ownership  - updates only; creates use role-based auto-assignment
//  4. business rules - entity-specific gates and side effects
package policy

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-crm/internal/apperr"
	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/rbac"
	"github.com/diewo77/go-crm/internal/store"
)

// Engine issues allow/deny decisions and applies approved mutations.
type Engine struct {
	store *store.Store
	log   zerolog.Logger

	// now is swappable for tests of the signed_at stamping.
	now func() time.Time
}

// NewEngine creates an engine over the given store.
func NewEngine(st *store.Store, log zerolog.Logger) *Engine {
	return &Engine{store: st, log: log, now: time.Now}
}

// requirePermission runs the identity and permission stages. The
// permission set is read fresh from the seeded catalog for the
// principal's current role.
func (e *Engine) requirePermission(ctx context.Context, tx *store.Store, p *auth.Principal, code string) error {
	if p == nil {
		return apperr.NotAuthenticated()
	}
	perms, err := rbac.PermissionsFor(ctx, tx.DB(), p.Role)
	if err != nil {
		return err
	}
	if !rbac.Has(perms, code) {
		return apperr.PermissionDenied(code)
	}
	return nil
}

package policy

import (
	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/rbac"
)

// SalesOwned is implemented by entities carrying a sales owner key.
type SalesOwned interface {
	SalesOwner() (uint, bool)
}

// OwnsClient reports whether the principal is the client's designated
// owner. The admin role owns everything.
func OwnsClient(p *auth.Principal, c *models.Client) bool {
	if rbac.IsAdmin(p.Role) {
		return true
	}
	owner, ok := c.SalesOwner()
	return ok && owner == p.ID
}

// OwnsContract reports whether the principal owns the contract, either
// directly or transitively through the client: the contract's own
// sales owner may be unset or stale, in which case the client's
// current owner decides. The Client association must be preloaded.
func OwnsContract(p *auth.Principal, k *models.Contract) bool {
	if rbac.IsAdmin(p.Role) {
		return true
	}
	if owner, ok := k.SalesOwner(); ok && owner == p.ID {
		return true
	}
	if k.Client != nil {
		if owner, ok := k.Client.SalesOwner(); ok && owner == p.ID {
			return true
		}
	}
	return false
}

// OwnsEvent reports whether the principal owns the event for update
// purposes: the admin role, or the assigned support contact. A
// commercial principal is never an event owner; it may create events
// but never update them.
func OwnsEvent(p *auth.Principal, e *models.Event) bool {
	if rbac.IsAdmin(p.Role) {
		return true
	}
	if !rbac.IsSupport(p.Role) {
		return false
	}
	return e.SupportContactID != nil && *e.SupportContactID == p.ID
}

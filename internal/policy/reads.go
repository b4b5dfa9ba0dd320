package policy

import (
	"context"

	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/rbac"
)

// Read paths are permission-gated but not ownership-gated: every role
// holding the read code sees the full list. Client reads pass through
// the PII codec inside the store.

func (e *Engine) ListClients(ctx context.Context, p *auth.Principal) ([]models.Client, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermClientRead); err != nil {
		return nil, err
	}
	return e.store.ListClients(ctx)
}

// ListMyClients returns the clients in the principal's own portfolio.
func (e *Engine) ListMyClients(ctx context.Context, p *auth.Principal) ([]models.Client, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermClientRead); err != nil {
		return nil, err
	}
	return e.store.ListClientsForSales(ctx, p.ID)
}

func (e *Engine) GetClient(ctx context.Context, p *auth.Principal, id uint) (*models.Client, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermClientRead); err != nil {
		return nil, err
	}
	return e.store.GetClient(ctx, id)
}

func (e *Engine) ListContracts(ctx context.Context, p *auth.Principal) ([]models.Contract, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermContractRead); err != nil {
		return nil, err
	}
	return e.store.ListContracts(ctx)
}

// ListUnsignedContracts returns contracts still awaiting signature.
func (e *Engine) ListUnsignedContracts(ctx context.Context, p *auth.Principal) ([]models.Contract, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermContractRead); err != nil {
		return nil, err
	}
	return e.store.ListUnsignedContracts(ctx)
}

// ListUnpaidContracts returns contracts with a remaining balance.
func (e *Engine) ListUnpaidContracts(ctx context.Context, p *auth.Principal) ([]models.Contract, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermContractRead); err != nil {
		return nil, err
	}
	return e.store.ListUnpaidContracts(ctx)
}

// ListContractsForClient returns all contracts of one client.
func (e *Engine) ListContractsForClient(ctx context.Context, p *auth.Principal, clientID uint) ([]models.Contract, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermContractRead); err != nil {
		return nil, err
	}
	return e.store.ListContractsForClient(ctx, clientID)
}

func (e *Engine) GetContract(ctx context.Context, p *auth.Principal, id uint) (*models.Contract, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermContractRead); err != nil {
		return nil, err
	}
	return e.store.GetContract(ctx, id)
}

func (e *Engine) ListEvents(ctx context.Context, p *auth.Principal) ([]models.Event, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermEventRead); err != nil {
		return nil, err
	}
	return e.store.ListEvents(ctx)
}

// ListUnassignedEvents returns events without a support contact,
// typically worked through by the admin team when dispatching support.
func (e *Engine) ListUnassignedEvents(ctx context.Context, p *auth.Principal) ([]models.Event, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermEventRead); err != nil {
		return nil, err
	}
	return e.store.ListEventsWithoutSupport(ctx)
}

// ListMyEvents returns the events assigned to the principal as
// support contact.
func (e *Engine) ListMyEvents(ctx context.Context, p *auth.Principal) ([]models.Event, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermEventRead); err != nil {
		return nil, err
	}
	return e.store.ListEventsForSupport(ctx, p.ID)
}

// ListEventsForContract returns all events of one contract.
func (e *Engine) ListEventsForContract(ctx context.Context, p *auth.Principal, contractID uint) ([]models.Event, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermEventRead); err != nil {
		return nil, err
	}
	return e.store.ListEventsForContract(ctx, contractID)
}

func (e *Engine) GetEvent(ctx context.Context, p *auth.Principal, id uint) (*models.Event, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermEventRead); err != nil {
		return nil, err
	}
	return e.store.GetEvent(ctx, id)
}

func (e *Engine) ListUsers(ctx context.Context, p *auth.Principal) ([]models.User, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermUserRead); err != nil {
		return nil, err
	}
	return e.store.ListUsers(ctx)
}

func (e *Engine) GetUserByEmail(ctx context.Context, p *auth.Principal, email string) (*models.User, error) {
	if err := e.requirePermission(ctx, e.store, p, rbac.PermUserRead); err != nil {
		return nil, err
	}
	return e.store.GetUserByEmail(ctx, email)
}

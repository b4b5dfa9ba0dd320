package policy

import (
	"context"
	"strconv"

	"github.com/diewo77/go-crm/internal/apperr"
	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/models"
	"github.com/diewo77/go-crm/internal/rbac"
	"github.com/diewo77/go-crm/internal/store"
)

// CreateClient creates a client. Non-admin callers are unconditionally
// auto-assigned as sales contact, overriding any supplied value; admin
// callers may name an explicit owner or leave the client unowned.
func (e *Engine) CreateClient(ctx context.Context, p *auth.Principal, in ClientInput) (*models.Client, error) {
	var client *models.Client
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		if err := e.requirePermission(ctx, tx, p, rbac.PermClientWrite); err != nil {
			return err
		}

		owner := in.SalesContactID
		if !rbac.IsAdmin(p.Role) {
			owner = &p.ID
		} else if owner != nil {
			if _, err := tx.GetUser(ctx, *owner); err != nil {
				return err
			}
		}

		client = &models.Client{
			FullName:       in.FullName,
			Email:          in.Email,
			Company:        in.Company,
			Phone:          in.Phone,
			SalesContactID: owner,
		}
		return tx.CreateClient(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().Uint("client_id", client.ID).Str("by", p.Email).Msg("client created")
	return client, nil
}

// UpdateClient applies a change set to a client the principal owns.
// A non-admin attempt to reassign the sales contact is dropped from
// the change set without failing the rest of the update.
func (e *Engine) UpdateClient(ctx context.Context, p *auth.Principal, clientID uint, ch ClientChanges) (*models.Client, error) {
	var client *models.Client
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		if err := e.requirePermission(ctx, tx, p, rbac.PermClientWrite); err != nil {
			return err
		}

		var err error
		client, err = tx.GetClient(ctx, clientID)
		if err != nil {
			return err
		}

		if !OwnsClient(p, client) {
			return apperr.OwnershipDenied("client", strconv.FormatUint(uint64(clientID), 10))
		}

		if ch.SalesContactID != nil {
			if rbac.IsAdmin(p.Role) {
				if _, err := tx.GetUser(ctx, *ch.SalesContactID); err != nil {
					return err
				}
				client.SalesContactID = ch.SalesContactID
			}
			// Non-admin reassignment attempts are a no-op for this
			// field only.
		}
		if ch.FullName != nil {
			client.FullName = *ch.FullName
		}
		if ch.Email != nil {
			client.Email = *ch.Email
		}
		if ch.Company != nil {
			client.Company = *ch.Company
		}
		if ch.Phone != nil {
			client.Phone = *ch.Phone
		}

		return tx.SaveClient(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().Uint("client_id", client.ID).Str("by", p.Email).Msg("client updated")
	return client, nil
}

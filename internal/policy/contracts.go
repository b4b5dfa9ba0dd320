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

func validateContractInput(total, due float64, status models.ContractStatus) error {
	if total < 0 {
		return apperr.BusinessRule("total amount must not be negative")
	}
	if due < 0 {
		return apperr.BusinessRule("amount due must not be negative")
	}
	if !status.Valid() {
		return apperr.BusinessRule("invalid contract status %q", status)
	}
	return nil
}

// CreateContract creates a contract for an existing client. Non-admin
// callers must already own that client; this is a creation rule, not
// an ownership check, since no contract exists yet to own. The new
// contract's sales contact is the client's current owner, falling back
// to the creator.
func (e *Engine) CreateContract(ctx context.Context, p *auth.Principal, clientID uint, in ContractInput) (*models.Contract, error) {
	var contract *models.Contract
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		if err := e.requirePermission(ctx, tx, p, rbac.PermContractWrite); err != nil {
			return err
		}

		client, err := tx.GetClient(ctx, clientID)
		if err != nil {
			return err
		}

		if !rbac.IsAdmin(p.Role) {
			if owner, ok := client.SalesOwner(); !ok || owner != p.ID {
				return apperr.BusinessRule("contracts can only be created for clients in your own portfolio")
			}
		}

		status := in.Status
		if status == "" {
			status = models.ContractPending
		}
		if err := validateContractInput(in.TotalAmount, in.AmountDue, status); err != nil {
			return err
		}

		salesContactID := client.SalesContactID
		if salesContactID == nil {
			salesContactID = &p.ID
		}

		contract = &models.Contract{
			ClientID:       clientID,
			SalesContactID: salesContactID,
			TotalAmount:    in.TotalAmount,
			AmountDue:      in.AmountDue,
			Status:         status,
		}
		if status == models.ContractSigned {
			now := e.now()
			contract.SignedAt = &now
		}
		return tx.CreateContract(ctx, contract)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().
		Uint("contract_id", contract.ID).
		Uint("client_id", contract.ClientID).
		Float64("total", contract.TotalAmount).
		Str("by", p.Email).
		Msg("contract created")
	return contract, nil
}

// UpdateContract applies a change set to a contract the principal
// owns. Entering SIGNED from any other state stamps signed_at with the
// current time; the change set carries no signed_at field, so callers
// can never set it, and a SIGNED to SIGNED no-op never re-stamps.
func (e *Engine) UpdateContract(ctx context.Context, p *auth.Principal, contractID uint, ch ContractChanges) (*models.Contract, error) {
	var contract *models.Contract
	var signed bool
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		if err := e.requirePermission(ctx, tx, p, rbac.PermContractWrite); err != nil {
			return err
		}

		var err error
		contract, err = tx.GetContract(ctx, contractID)
		if err != nil {
			return err
		}

		if !OwnsContract(p, contract) {
			return apperr.OwnershipDenied("contract", strconv.FormatUint(uint64(contractID), 10))
		}

		if ch.SalesContactID != nil && rbac.IsAdmin(p.Role) {
			if _, err := tx.GetUser(ctx, *ch.SalesContactID); err != nil {
				return err
			}
			contract.SalesContactID = ch.SalesContactID
		}
		if ch.TotalAmount != nil {
			contract.TotalAmount = *ch.TotalAmount
		}
		if ch.AmountDue != nil {
			contract.AmountDue = *ch.AmountDue
		}

		oldStatus := contract.Status
		if ch.Status != nil {
			contract.Status = *ch.Status
		}
		if err := validateContractInput(contract.TotalAmount, contract.AmountDue, contract.Status); err != nil {
			return err
		}

		if oldStatus != models.ContractSigned && contract.Status == models.ContractSigned {
			now := e.now()
			contract.SignedAt = &now
			signed = true
		}

		return tx.SaveContract(ctx, contract)
	})
	if err != nil {
		return nil, err
	}
	if signed {
		e.log.Info().
			Uint("contract_id", contract.ID).
			Uint("client_id", contract.ClientID).
			Str("by", p.Email).
			Msg("contract signed")
	}
	e.log.Info().Uint("contract_id", contract.ID).Str("by", p.Email).Msg("contract updated")
	return contract, nil
}

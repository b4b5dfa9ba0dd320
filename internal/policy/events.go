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

// CreateEvent creates an event against a contract. The support role
// can never create events. A commercial caller must own the contract's
// client and the contract must be SIGNED; the admin role bypasses
// both checks. The support contact always starts unassigned.
func (e *Engine) CreateEvent(ctx context.Context, p *auth.Principal, contractID uint, in EventInput) (*models.Event, error) {
	var event *models.Event
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		if err := e.requirePermission(ctx, tx, p, rbac.PermEventWrite); err != nil {
			return err
		}

		if rbac.IsSupport(p.Role) {
			return apperr.BusinessRule("support members cannot create events")
		}

		contract, err := tx.GetContract(ctx, contractID)
		if err != nil {
			return err
		}

		if !rbac.IsAdmin(p.Role) {
			if contract.Client == nil {
				return apperr.BusinessRule("events can only be created for contracts of your own clients")
			}
			if owner, ok := contract.Client.SalesOwner(); !ok || owner != p.ID {
				return apperr.BusinessRule("events can only be created for contracts of your own clients")
			}
			if !contract.Signed() {
				return apperr.BusinessRule("contract %d is not signed", contractID)
			}
		}

		if in.Attendees < 0 {
			return apperr.BusinessRule("attendees must not be negative")
		}

		event = &models.Event{
			ContractID: contractID,
			EventDate:  in.EventDate,
			Location:   in.Location,
			Attendees:  in.Attendees,
			Notes:      in.Notes,
		}
		return tx.CreateEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().
		Uint("event_id", event.ID).
		Uint("contract_id", event.ContractID).
		Str("by", p.Email).
		Msg("event created")
	return event, nil
}

// UpdateEvent applies a change set to an event. A commercial caller is
// denied outright. A support caller must be the assigned contact and
// cannot touch the support assignment: that field is silently dropped.
// Only the admin role assigns or reassigns the support contact, and
// the referenced collaborator must exist.
func (e *Engine) UpdateEvent(ctx context.Context, p *auth.Principal, eventID uint, ch EventChanges) (*models.Event, error) {
	var event *models.Event
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		if err := e.requirePermission(ctx, tx, p, rbac.PermEventWrite); err != nil {
			return err
		}

		var err error
		event, err = tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}

		if !OwnsEvent(p, event) {
			return apperr.OwnershipDenied("event", strconv.FormatUint(uint64(eventID), 10))
		}

		if rbac.IsAdmin(p.Role) {
			if ch.SupportEmail != nil && *ch.SupportEmail != "" {
				support, err := tx.GetUserByEmail(ctx, *ch.SupportEmail)
				if err != nil {
					return err
				}
				if support.RoleName() != rbac.RoleSupport {
					e.log.Warn().
						Str("email", support.Email).
						Uint("event_id", eventID).
						Msg("assigning a non-support collaborator to event")
				}
				event.SupportContactID = &support.ID
			} else if ch.SupportContactID != nil {
				if _, err := tx.GetUser(ctx, *ch.SupportContactID); err != nil {
					return err
				}
				event.SupportContactID = ch.SupportContactID
			}
		}
		// Support principals cannot reassign themselves or anyone
		// else; their SupportContactID/SupportEmail changes are a
		// no-op for those fields only.

		if ch.Attendees != nil {
			if *ch.Attendees < 0 {
				return apperr.BusinessRule("attendees must not be negative")
			}
			event.Attendees = *ch.Attendees
		}
		if ch.EventDate != nil {
			event.EventDate = ch.EventDate
		}
		if ch.Location != nil {
			event.Location = *ch.Location
		}
		if ch.Notes != nil {
			event.Notes = *ch.Notes
		}

		return tx.SaveEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().Uint("event_id", event.ID).Str("by", p.Email).Msg("event updated")
	return event, nil
}

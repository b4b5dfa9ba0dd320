package policy

import (
	"context"
	"fmt"

	"github.com/diewo77/go-crm/internal/auth"
)

// EntityKind names an authorizable entity for the generic entry
// points. Callers with static knowledge of the entity should prefer
// the typed methods; the dispatchers exist for callers that route on
// an entity name (e.g. a generic API layer).
type EntityKind string

const (
	KindClient   EntityKind = "client"
	KindContract EntityKind = "contract"
	KindEvent    EntityKind = "event"
	KindUser     EntityKind = "user"
)

// ContractCreate pairs a contract payload with its target client.
type ContractCreate struct {
	ClientID uint
	Input    ContractInput
}

// EventCreate pairs an event payload with its target contract.
type EventCreate struct {
	ContractID uint
	Input      EventInput
}

// AuthorizeCreate routes a create payload to the matching typed
// entry point. The payload type must match the kind.
func (e *Engine) AuthorizeCreate(ctx context.Context, p *auth.Principal, kind EntityKind, payload any) (any, error) {
	switch kind {
	case KindClient:
		in, ok := payload.(ClientInput)
		if !ok {
			return nil, fmt.Errorf("client create expects ClientInput, got %T", payload)
		}
		return e.CreateClient(ctx, p, in)
	case KindContract:
		in, ok := payload.(ContractCreate)
		if !ok {
			return nil, fmt.Errorf("contract create expects ContractCreate, got %T", payload)
		}
		return e.CreateContract(ctx, p, in.ClientID, in.Input)
	case KindEvent:
		in, ok := payload.(EventCreate)
		if !ok {
			return nil, fmt.Errorf("event create expects EventCreate, got %T", payload)
		}
		return e.CreateEvent(ctx, p, in.ContractID, in.Input)
	case KindUser:
		in, ok := payload.(UserInput)
		if !ok {
			return nil, fmt.Errorf("user create expects UserInput, got %T", payload)
		}
		return e.CreateUser(ctx, p, in)
	}
	return nil, fmt.Errorf("unknown entity kind %q", kind)
}

// AuthorizeUpdate routes an update change set to the matching typed
// entry point.
func (e *Engine) AuthorizeUpdate(ctx context.Context, p *auth.Principal, kind EntityKind, id uint, changes any) (any, error) {
	switch kind {
	case KindClient:
		ch, ok := changes.(ClientChanges)
		if !ok {
			return nil, fmt.Errorf("client update expects ClientChanges, got %T", changes)
		}
		return e.UpdateClient(ctx, p, id, ch)
	case KindContract:
		ch, ok := changes.(ContractChanges)
		if !ok {
			return nil, fmt.Errorf("contract update expects ContractChanges, got %T", changes)
		}
		return e.UpdateContract(ctx, p, id, ch)
	case KindEvent:
		ch, ok := changes.(EventChanges)
		if !ok {
			return nil, fmt.Errorf("event update expects EventChanges, got %T", changes)
		}
		return e.UpdateEvent(ctx, p, id, ch)
	case KindUser:
		ch, ok := changes.(UserChanges)
		if !ok {
			return nil, fmt.Errorf("user update expects UserChanges, got %T", changes)
		}
		return e.UpdateUser(ctx, p, id, ch)
	}
	return nil, fmt.Errorf("unknown entity kind %q", kind)
}

// AuthorizeDelete routes a delete. Only collaborators are deletable
// through the engine in the current scope.
func (e *Engine) AuthorizeDelete(ctx context.Context, p *auth.Principal, kind EntityKind, id uint) error {
	if kind != KindUser {
		return fmt.Errorf("delete is not supported for entity kind %q", kind)
	}
	return e.DeleteUser(ctx, p, id)
}

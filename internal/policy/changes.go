package policy

import (
	"time"

	"github.com/diewo77/go-crm/internal/models"
)

// Inputs and change sets accepted by the engine. Change-set fields are
// pointers: nil means "not part of this update". Fields the engine
// manages itself (contract signed_at, timestamps) deliberately have no
// counterpart here, so callers cannot supply them at all.

// ClientInput creates a client. SalesContactID is honored for admin
// callers only; everyone else is auto-assigned as owner.
type ClientInput struct {
	FullName       string
	Email          string
	Company        string
	Phone          string
	SalesContactID *uint
}

// ClientChanges updates a client. A non-admin attempt to change
// SalesContactID is silently dropped, not an error.
type ClientChanges struct {
	FullName       *string
	Email          *string
	Company        *string
	Phone          *string
	SalesContactID *uint
}

// ContractInput creates a contract for an existing client. Status
// defaults to PENDING when empty.
type ContractInput struct {
	TotalAmount float64
	AmountDue   float64
	Status      models.ContractStatus
}

// ContractChanges updates a contract. SalesContactID mirrors the
// client rule: admin may reassign, non-admin attempts are dropped.
type ContractChanges struct {
	TotalAmount    *float64
	AmountDue      *float64
	Status         *models.ContractStatus
	SalesContactID *uint
}

// EventInput creates an event against a signed contract. The support
// contact always starts unassigned.
type EventInput struct {
	EventDate *time.Time
	Location  string
	Attendees int
	Notes     string
}

// EventChanges updates an event. SupportEmail resolves a collaborator
// by email; only the admin role may assign or change the support
// contact, a support principal's attempt is silently dropped.
type EventChanges struct {
	EventDate        *time.Time
	Location         *string
	Attendees        *int
	Notes            *string
	SupportContactID *uint
	SupportEmail     *string
}

// UserInput creates a collaborator. An empty password falls back to a
// placeholder the collaborator must change on first login.
type UserInput struct {
	Email          string
	FullName       string
	Password       string
	EmployeeNumber *string
	RoleName       string
}

// UserChanges updates a collaborator. Password is rehashed, RoleName
// is resolved against the seeded roles.
type UserChanges struct {
	Email          *string
	FullName       *string
	Password       *string
	EmployeeNumber *string
	RoleName       *string
}

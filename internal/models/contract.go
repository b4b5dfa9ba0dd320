package models

import "time"

// ContractStatus is the contract lifecycle state.
type ContractStatus string

const (
	ContractPending   ContractStatus = "PENDING"
	ContractSigned    ContractStatus = "SIGNED"
	ContractCancelled ContractStatus = "CANCELLED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s ContractStatus) Valid() bool {
	switch s {
	case ContractPending, ContractSigned, ContractCancelled:
		return true
	}
	return false
}

// Contract belongs to exactly one client and is deleted with it.
// SignedAt is stamped exactly once by the policy engine when the
// status enters SIGNED; it is never written from caller input.
type Contract struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ClientID uint    `gorm:"index;not null"`
	Client   *Client `gorm:"foreignKey:ClientID"`

	// SalesContactID may lag behind the client's current sales owner;
	// ownership falls back to the client when it is unset or stale.
	SalesContactID *uint `gorm:"index"`
	SalesContact   *User `gorm:"foreignKey:SalesContactID;constraint:OnDelete:SET NULL"`

	TotalAmount float64 `gorm:"type:decimal(10,2);not null"`
	AmountDue   float64 `gorm:"type:decimal(10,2);not null"`

	Status   ContractStatus `gorm:"size:32;not null;default:PENDING"`
	SignedAt *time.Time

	Events []Event `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE"`
}

// SalesOwner implements SalesOwned for the ownership resolver.
func (k *Contract) SalesOwner() (uint, bool) {
	if k.SalesContactID == nil {
		return 0, false
	}
	return *k.SalesContactID, true
}

// Signed reports whether the contract is in the SIGNED state.
func (k *Contract) Signed() bool {
	return k.Status == ContractSigned
}

package models

import "time"

// Event is scheduled against a contract and is deleted with it.
// SupportContactID stays nil until an admin assigns a support
// collaborator; support and commercial roles cannot drive that
// transition.
type Event struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ContractID uint      `gorm:"index;not null"`
	Contract   *Contract `gorm:"foreignKey:ContractID"`

	SupportContactID *uint `gorm:"index"`
	SupportContact   *User `gorm:"foreignKey:SupportContactID;constraint:OnDelete:SET NULL"`

	EventDate *time.Time
	Location  string `gorm:"size:255"`
	Attendees int
	Notes     string `gorm:"type:text"`
}

// Assigned reports whether a support contact has been assigned.
func (e *Event) Assigned() bool {
	return e.SupportContactID != nil
}

package models

import "time"

// User is a collaborator account. Users own clients and contracts as
// sales contact and events as support contact; deleting a user must
// never cascade into those entities, only clear the owner column.
type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Email        string `gorm:"size:255;uniqueIndex;not null"`
	FullName     string `gorm:"size:255"`
	PasswordHash string `gorm:"size:255;not null"`

	// EmployeeNumber is assigned by HR and optional for seeded accounts.
	EmployeeNumber *string `gorm:"size:32;uniqueIndex"`

	RoleID *uint `gorm:"index"`
	Role   *Role `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL"`

	// Reverse relations. The SET NULL constraints live on the owning side.
	SalesClients   []Client   `gorm:"foreignKey:SalesContactID"`
	SalesContracts []Contract `gorm:"foreignKey:SalesContactID"`
	SupportEvents  []Event    `gorm:"foreignKey:SupportContactID"`
}

// RoleName returns the assigned role name, or "" when the user has none.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

package models

import "time"

// Client is a customer of the company. The contact fields (full name,
// email, company, phone) hold ciphertext at rest; the store encrypts
// on write and decrypts on read through the PII codec, so a Client
// loaded outside the store exposes only opaque values.
type Client struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Encrypted at rest. Sized for base64 AES-GCM output.
	FullName string `gorm:"size:512"`
	Email    string `gorm:"size:512"`
	Company  string `gorm:"size:512"`
	Phone    string `gorm:"size:512"`

	// SalesContactID is the ownership key. Admin-created clients may
	// start unowned; once set, only the admin role may reassign it.
	SalesContactID *uint `gorm:"index"`
	SalesContact   *User `gorm:"foreignKey:SalesContactID;constraint:OnDelete:SET NULL"`

	Contracts []Contract `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// SalesOwner implements the SalesOwned interface used by the ownership
// resolver. The second return is false while the client is unowned.
func (c *Client) SalesOwner() (uint, bool) {
	if c.SalesContactID == nil {
		return 0, false
	}
	return *c.SalesContactID, true
}

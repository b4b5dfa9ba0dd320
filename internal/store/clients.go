package store

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/diewo77/go-crm/internal/apperr"
	"github.com/diewo77/go-crm/internal/models"
)

// encryptClient seals the sensitive contact fields in place.
func (s *Store) encryptClient(c *models.Client) error {
	var err error
	if c.FullName, err = s.codec.Encrypt(c.FullName); err != nil {
		return err
	}
	if c.Email, err = s.codec.Encrypt(c.Email); err != nil {
		return err
	}
	if c.Company, err = s.codec.Encrypt(c.Company); err != nil {
		return err
	}
	c.Phone, err = s.codec.Encrypt(c.Phone)
	return err
}

// decryptClient opens the sensitive contact fields in place. A failure
// here is a DataIntegrity error and aborts the read.
func (s *Store) decryptClient(c *models.Client) error {
	var err error
	if c.FullName, err = s.codec.Decrypt(c.FullName); err != nil {
		return err
	}
	if c.Email, err = s.codec.Decrypt(c.Email); err != nil {
		return err
	}
	if c.Company, err = s.codec.Decrypt(c.Company); err != nil {
		return err
	}
	c.Phone, err = s.codec.Decrypt(c.Phone)
	return err
}

// CreateClient inserts a client given with plaintext contact fields.
// The stored row holds ciphertext; the passed struct keeps plaintext.
func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	row := *c
	if err := s.encryptClient(&row); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	c.ID = row.ID
	c.CreatedAt = row.CreatedAt
	c.UpdatedAt = row.UpdatedAt
	return nil
}

// SaveClient persists all fields of a client given with plaintext
// contact fields.
func (s *Store) SaveClient(ctx context.Context, c *models.Client) error {
	row := *c
	if err := s.encryptClient(&row); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return err
	}
	c.UpdatedAt = row.UpdatedAt
	return nil
}

// GetClient loads one client with decrypted contact fields.
func (s *Store) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	err := s.db.WithContext(ctx).First(&c, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("client", strconv.FormatUint(uint64(id), 10))
	}
	if err != nil {
		return nil, err
	}
	if err := s.decryptClient(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListClients returns all clients with decrypted contact fields.
func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).Order("id").Find(&clients).Error; err != nil {
		return nil, err
	}
	for i := range clients {
		if err := s.decryptClient(&clients[i]); err != nil {
			return nil, err
		}
	}
	return clients, nil
}

// ListClientsForSales returns the clients owned by one sales contact.
func (s *Store) ListClientsForSales(ctx context.Context, userID uint) ([]models.Client, error) {
	var clients []models.Client
	err := s.db.WithContext(ctx).Where("sales_contact_id = ?", userID).Order("id").Find(&clients).Error
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if err := s.decryptClient(&clients[i]); err != nil {
			return nil, err
		}
	}
	return clients, nil
}

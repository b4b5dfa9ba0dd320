package store

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/diewo77/go-crm/internal/apperr"
	"github.com/diewo77/go-crm/internal/models"
)

// CreateUser inserts a new collaborator row.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

// SaveUser persists all fields of a collaborator.
func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Omit("Role").Save(u).Error
}

// GetUser loads one collaborator with their role.
func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Preload("Role").First(&u, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("collaborator", strconv.FormatUint(uint64(id), 10))
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail loads one collaborator by email with their role.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("collaborator", email)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetRoleByName loads one role by its unique name.
func (s *Store) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var r models.Role
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&r).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("role", name)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteUser removes a collaborator. Owned clients, contracts and
// events survive: their owner foreign keys are cleared, never
// cascaded. The explicit clears keep sqlite deployments without
// enforced foreign keys consistent with the schema's SET NULL intent.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Client{}).Where("sales_contact_id = ?", id).Update("sales_contact_id", nil).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Contract{}).Where("sales_contact_id = ?", id).Update("sales_contact_id", nil).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Event{}).Where("support_contact_id = ?", id).Update("support_contact_id", nil).Error; err != nil {
		return err
	}
	return db.Delete(&models.User{}, id).Error
}

// ListUsers returns all collaborators with their roles.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Preload("Role").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

package store

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/diewo77/go-crm/internal/apperr"
	"github.com/diewo77/go-crm/internal/models"
)

// CreateEvent inserts a new event row.
func (s *Store) CreateEvent(ctx context.Context, e *models.Event) error {
	return s.db.WithContext(ctx).Create(e).Error
}

// SaveEvent persists all fields of an event.
func (s *Store) SaveEvent(ctx context.Context, e *models.Event) error {
	return s.db.WithContext(ctx).Omit("Contract").Save(e).Error
}

// GetEvent loads one event.
func (s *Store) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	var e models.Event
	err := s.db.WithContext(ctx).First(&e, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("event", strconv.FormatUint(uint64(id), 10))
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEvents returns all events.
func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := s.db.WithContext(ctx).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListEventsWithoutSupport returns events awaiting a support
// assignment.
func (s *Store) ListEventsWithoutSupport(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).Where("support_contact_id IS NULL").Order("id").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListEventsForSupport returns events assigned to one support contact.
func (s *Store) ListEventsForSupport(ctx context.Context, userID uint) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).Where("support_contact_id = ?", userID).Order("id").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListEventsForContract returns all events of one contract.
func (s *Store) ListEventsForContract(ctx context.Context, contractID uint) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).Where("contract_id = ?", contractID).Order("id").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

package store

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/diewo77/go-crm/internal/apperr"
	"github.com/diewo77/go-crm/internal/models"
)

// CreateContract inserts a new contract row.
func (s *Store) CreateContract(ctx context.Context, k *models.Contract) error {
	return s.db.WithContext(ctx).Create(k).Error
}

// SaveContract persists all fields of a contract.
func (s *Store) SaveContract(ctx context.Context, k *models.Contract) error {
	// Never write the preloaded client back through the association.
	return s.db.WithContext(ctx).Omit("Client").Save(k).Error
}

// GetContract loads one contract with its client preloaded; ownership
// of a contract is inherited through the client, so callers almost
// always need it. Client contact fields come back decrypted.
func (s *Store) GetContract(ctx context.Context, id uint) (*models.Contract, error) {
	var k models.Contract
	err := s.db.WithContext(ctx).Preload("Client").First(&k, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("contract", strconv.FormatUint(uint64(id), 10))
	}
	if err != nil {
		return nil, err
	}
	if k.Client != nil {
		if err := s.decryptClient(k.Client); err != nil {
			return nil, err
		}
	}
	return &k, nil
}

// ListContracts returns all contracts.
func (s *Store) ListContracts(ctx context.Context) ([]models.Contract, error) {
	var contracts []models.Contract
	if err := s.db.WithContext(ctx).Order("id").Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// ListUnsignedContracts returns contracts not yet signed.
func (s *Store) ListUnsignedContracts(ctx context.Context) ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.db.WithContext(ctx).Where("status <> ?", models.ContractSigned).Order("id").Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// ListUnpaidContracts returns contracts with a remaining balance.
func (s *Store) ListUnpaidContracts(ctx context.Context) ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.db.WithContext(ctx).Where("amount_due > 0").Order("id").Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// ListContractsForClient returns all contracts of one client.
func (s *Store) ListContractsForClient(ctx context.Context, clientID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("id").Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

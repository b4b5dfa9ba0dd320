// Package store is the durable entity store. All reads and writes for
// clients, contracts, events and collaborators go through it, and it
// is the single place where the PII codec runs: every sensitive client
// field is encrypted on the way in and decrypted on the way out, so no
// other component can accidentally persist plaintext.
package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/diewo77/go-crm/internal/secrets"
)

// Store wraps the database handle and the PII codec.
type Store struct {
	db    *gorm.DB
	codec *secrets.Codec
}

// New creates a store over the given connection and codec.
func New(db *gorm.DB, codec *secrets.Codec) *Store {
	return &Store{db: db, codec: codec}
}

// Transaction runs fn inside one database transaction; the store
// passed to fn is bound to that transaction. All writes of one
// authorize-and-apply call commit or roll back together.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, codec: s.codec})
	})
}

// DB exposes the underlying handle for read-only lookups that need no
// entity mapping (e.g. the permission catalog).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Package repository defines the persistence contracts for product documents
// and the id sequence counter.
package repository

import (
	"context"

	"github.com/jchamizo/productos/internal/domain/models"
)

// ProductRepository persists Product documents keyed by integer id.
// GetByID returns (nil, nil) when no document matches; absence is not an
// error at this layer.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Insert(ctx context.Context, product models.Product) error
	// Replace overwrites the document with the same id wholesale. It
	// returns false when no document matched.
	Replace(ctx context.Context, product models.Product) (bool, error)
	// Delete removes the document. It returns false when nothing was
	// deleted.
	Delete(ctx context.Context, id int) (bool, error)
}

// SequenceAllocator hands out monotonically increasing integer ids per named
// sequence. Next must be an atomic increment-and-fetch so concurrent callers
// never observe the same value.
type SequenceAllocator interface {
	Next(ctx context.Context, key string) (int, error)
}

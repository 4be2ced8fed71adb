// Package memory provides an in-process implementation of the repository
// contracts, used by the test suite in place of a running MongoDB.
package memory

import (
	"context"
	"sync"

	"github.com/jchamizo/productos/internal/domain/models"
)

// Repository is a mutex-guarded, slice-backed product store with per-key
// counters. It preserves insertion order on GetAll.
type Repository struct {
	mu       sync.Mutex
	products []models.Product
	seqs     map[string]int
}

func New() *Repository {
	return &Repository{seqs: map[string]int{}}
}

func (r *Repository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *Repository) Insert(ctx context.Context, product models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, product)
	return nil
}

func (r *Repository) Replace(ctx context.Context, product models.Product) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) Delete(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Next mirrors the Mongo counter semantics: increment-and-fetch per key,
// first value 1.
func (r *Repository) Next(ctx context.Context, key string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seqs[key]++
	return r.seqs[key], nil
}

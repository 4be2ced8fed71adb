// Package products implements the product CRUD and stock adjustment rules on
// top of the repository contracts.
package products

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jchamizo/productos/internal/domain/models"
	"github.com/jchamizo/productos/internal/repository"
	"github.com/jchamizo/productos/pkg/names"
)

// sequenceKey scopes the id counter to the product entity.
const sequenceKey = "product"

const (
	minStock = 0
	maxStock = 100
)

// Service orchestrates validation, duplicate detection and persistence.
type Service struct {
	repo   repository.ProductRepository
	seq    repository.SequenceAllocator
	logger *zap.Logger
}

// NewService wires a product service instance.
func NewService(repo repository.ProductRepository, seq repository.SequenceAllocator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, seq: seq, logger: logger}
}

// List returns all products in store-native order.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// Get returns (nil, nil) when the id is unknown; absence is not an error
// for reads.
func (s *Service) Get(ctx context.Context, id int) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the candidate, normalizes its name, rejects duplicates,
// assigns an id when the sentinel 0 is supplied and persists the record with
// a server-side creation timestamp.
//
// The duplicate check reads the full record set and is not atomic with the
// insert; two concurrent creates with the same name can both pass it.
func (s *Service) Create(ctx context.Context, candidate models.Product) (*models.Product, error) {
	if candidate.Stock < minStock || candidate.Stock > maxStock {
		return nil, ErrInvalidStock
	}

	normalized, err := names.Normalize(candidate.Name)
	if err != nil {
		s.logger.Warn("create rejected", zap.String("name", candidate.Name), zap.Error(err))
		return nil, err
	}

	if err := s.checkDuplicate(ctx, normalized, 0); err != nil {
		return nil, err
	}

	if candidate.ID == 0 {
		id, err := s.seq.Next(ctx, sequenceKey)
		if err != nil {
			return nil, err
		}
		candidate.ID = id
	}

	candidate.Name = normalized
	candidate.CreatedDate = time.Now().UTC()

	if err := s.repo.Insert(ctx, candidate); err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.Int("id", candidate.ID), zap.String("name", candidate.Name))
	return &candidate, nil
}

// Update replaces name and stock of an existing record. Id and creation
// timestamp are immutable.
func (s *Service) Update(ctx context.Context, candidate models.Product) (*models.Product, error) {
	existing, err := s.repo.GetByID(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		s.logger.Warn("update of unknown product", zap.Int("id", candidate.ID))
		return nil, ErrNotFound
	}

	if candidate.Stock < minStock || candidate.Stock > maxStock {
		return nil, ErrInvalidStock
	}

	normalized, err := names.Normalize(candidate.Name)
	if err != nil {
		s.logger.Warn("update rejected", zap.Int("id", candidate.ID), zap.Error(err))
		return nil, err
	}

	if err := s.checkDuplicate(ctx, normalized, candidate.ID); err != nil {
		return nil, err
	}

	existing.Name = normalized
	existing.Stock = candidate.Stock
	return s.persist(ctx, existing)
}

// SetStock overwrites the stock level with an absolute amount. A nil amount
// means the request carried no usable payload; the existence check still
// runs first, so an unknown id wins over a missing payload.
func (s *Service) SetStock(ctx context.Context, id int, amount *int) (*models.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if amount == nil {
		return nil, ErrInvalidPayload
	}
	if *amount < minStock || *amount > maxStock {
		return nil, ErrInvalidStock
	}

	existing.Stock = *amount
	return s.persist(ctx, existing)
}

// IncrementStock raises the stock level by amount. The range check applies
// to the resulting value; on rejection the stored value is untouched.
func (s *Service) IncrementStock(ctx context.Context, id int, amount *int) (*models.Product, error) {
	return s.adjustStock(ctx, id, amount, 1)
}

// DecrementStock lowers the stock level by amount, with the same resulting-
// value range check as IncrementStock.
func (s *Service) DecrementStock(ctx context.Context, id int, amount *int) (*models.Product, error) {
	return s.adjustStock(ctx, id, amount, -1)
}

func (s *Service) adjustStock(ctx context.Context, id int, amount *int, sign int) (*models.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if amount == nil {
		return nil, ErrInvalidPayload
	}

	next := existing.Stock + sign*(*amount)
	if next < minStock || next > maxStock {
		s.logger.Warn("stock adjustment rejected",
			zap.Int("id", id), zap.Int("current", existing.Stock), zap.Int("amount", *amount))
		return nil, ErrInvalidStock
	}

	existing.Stock = next
	return s.persist(ctx, existing)
}

// Delete hard-deletes the record.
func (s *Service) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.logger.Info("product deleted", zap.Int("id", id))
	return nil
}

// checkDuplicate scans all records for a case-insensitive match on the
// normalized name. excludeID skips the record being updated; 0 excludes
// nothing.
func (s *Service) checkDuplicate(ctx context.Context, normalized string, excludeID int) error {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	lowered := strings.ToLower(normalized)
	for _, p := range all {
		if p.ID != excludeID && strings.ToLower(p.Name) == lowered {
			s.logger.Warn("duplicate name attempted", zap.String("name", normalized))
			return ErrDuplicateName
		}
	}
	return nil
}

func (s *Service) persist(ctx context.Context, product *models.Product) (*models.Product, error) {
	matched, err := s.repo.Replace(ctx, *product)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrNotFound
	}
	return product, nil
}

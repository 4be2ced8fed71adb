package products

import (
	"errors"

	"github.com/jchamizo/productos/pkg/names"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrDuplicateName  = errors.New("duplicate name")
	ErrInvalidStock   = errors.New("stock must be between 0 and 100")
	ErrInvalidPayload = errors.New("invalid payload")
)

// IsDomainError reports whether err is a client-caused rejection, as opposed
// to a store failure. ErrNotFound is intentionally excluded; callers map it
// to its own status.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrInvalidStock) ||
		errors.Is(err, ErrInvalidPayload) ||
		names.IsValidationError(err)
}

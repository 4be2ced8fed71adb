package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jchamizo/productos/internal/domain/models"
	"github.com/jchamizo/productos/internal/service/products"
)

// ProductHandler adapts the product service to HTTP.
type ProductHandler struct {
	svc    *products.Service
	logger *zap.Logger
}

// NewProductHandler constructs the HTTP handler adapter.
func NewProductHandler(svc *products.Service, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{svc: svc, logger: logger}
}

// List returns every product.
func (h *ProductHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns the product, or a null body when the id is unknown.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	product, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create inserts a new product; an id of 0 asks the server to assign one.
func (h *ProductHandler) Create(c *gin.Context) {
	var candidate models.Product
	if err := c.ShouldBindJSON(&candidate); err != nil {
		h.logger.Warn("invalid create payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": products.ErrInvalidPayload.Error()})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), candidate)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// Update replaces name and stock of the product identified by the body id.
func (h *ProductHandler) Update(c *gin.Context) {
	var candidate models.Product
	if err := c.ShouldBindJSON(&candidate); err != nil {
		h.logger.Warn("invalid update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": products.ErrInvalidPayload.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), candidate)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetStock handles PATCH /products/:id/stock with an absolute amount.
func (h *ProductHandler) SetStock(c *gin.Context) {
	h.stockOp(c, h.svc.SetStock)
}

// IncrementStock handles PATCH /products/:id/stock/increment.
func (h *ProductHandler) IncrementStock(c *gin.Context) {
	h.stockOp(c, h.svc.IncrementStock)
}

// DecrementStock handles PATCH /products/:id/stock/decrement.
func (h *ProductHandler) DecrementStock(c *gin.Context) {
	h.stockOp(c, h.svc.DecrementStock)
}

// Delete removes the product and answers 204 on success.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) stockOp(c *gin.Context, op func(ctx context.Context, id int, amount *int) (*models.Product, error)) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	// A missing or malformed body leaves Amount nil; the service decides
	// how that ranks against an unknown id.
	var payload models.StockAdjustment
	_ = c.ShouldBindJSON(&payload)

	updated, err := op(c.Request.Context(), id, payload.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": products.ErrInvalidPayload.Error()})
		return 0, false
	}
	return id, true
}

// fail maps service errors to HTTP statuses: not-found to 404, domain
// rejections to 400, everything else to 500.
func (h *ProductHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, products.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case products.IsDomainError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("store operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
	}
}

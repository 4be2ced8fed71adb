// Package products provides the HTTP client for the product API. It mirrors
// the server-side name and stock rules before submitting, so callers get
// immediate feedback without a round trip; the server remains authoritative
// and re-validates every request.
package products

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jchamizo/productos/pkg/names"
)

// Product mirrors the API representation of a product record.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	CreatedDate time.Time `json:"createdDate"`
	Stock       int       `json:"stock"`
}

// APIError carries a server-reported failure verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// NotFound reports whether the server answered 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

var (
	ErrInvalidStock  = fmt.Errorf("stock must be between 0 and 100")
	ErrForbiddenName = fmt.Errorf("name is not allowed")
	ErrInvalidPart   = fmt.Errorf("name parts may only use letters, apostrophes and hyphens, up to 100 characters")
	ErrDuplicateName = fmt.Errorf("duplicate name")
)

// forbiddenTokens rejects placeholder names, matched case-sensitively as
// whole tokens.
var forbiddenTokens = []string{"Empleado", "N/A", "Nombre", "Anonimo", "Test"}

var partPattern = regexp.MustCompile(`^[\p{L}'-]+$`)

type apiError struct {
	Error string `json:"error"`
}

// Client is a resty-backed API client.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a product API client for the given base URL.
func NewClient(baseURL string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: restyClient}
}

// List fetches every product.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	result := []Product{}
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(apiErr).
		Get("/products")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}
	return result, nil
}

// Get fetches one product; it returns (nil, nil) when the id is unknown,
// matching the server's null body.
func (c *Client) Get(ctx context.Context, id int) (*Product, error) {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr).
		Get(fmt.Sprintf("/products/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}

	var product *Product
	if err := json.Unmarshal(resp.Body(), &product); err != nil {
		return nil, fmt.Errorf("decode product %d: %w", id, err)
	}
	return product, nil
}

// Create validates the candidate locally, runs an advisory duplicate check
// against the current list and submits it. The candidate's name is sent
// normalized.
func (c *Client) Create(ctx context.Context, candidate Product) (*Product, error) {
	normalized, err := c.gate(ctx, candidate)
	if err != nil {
		return nil, err
	}
	candidate.Name = normalized

	return c.save(ctx, http.MethodPost, candidate)
}

// Update is the edit counterpart of Create; the advisory duplicate check
// ignores the record's own id.
func (c *Client) Update(ctx context.Context, candidate Product) (*Product, error) {
	normalized, err := c.gate(ctx, candidate)
	if err != nil {
		return nil, err
	}
	candidate.Name = normalized

	return c.save(ctx, http.MethodPut, candidate)
}

// SetStock sets the absolute stock amount.
func (c *Client) SetStock(ctx context.Context, id int, amount int) (*Product, error) {
	return c.patchStock(ctx, fmt.Sprintf("/products/%d/stock", id), amount)
}

// IncrementStock raises stock by amount.
func (c *Client) IncrementStock(ctx context.Context, id int, amount int) (*Product, error) {
	return c.patchStock(ctx, fmt.Sprintf("/products/%d/stock/increment", id), amount)
}

// DecrementStock lowers stock by amount.
func (c *Client) DecrementStock(ctx context.Context, id int, amount int) (*Product, error) {
	return c.patchStock(ctx, fmt.Sprintf("/products/%d/stock/decrement", id), amount)
}

// Delete removes a product.
func (c *Client) Delete(ctx context.Context, id int) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr).
		Delete(fmt.Sprintf("/products/%d", id))
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}
	return nil
}

// gate runs the full client-side validation and returns the normalized name.
func (c *Client) gate(ctx context.Context, candidate Product) (string, error) {
	if candidate.Stock < 0 || candidate.Stock > 100 {
		return "", ErrInvalidStock
	}

	normalized, err := names.Normalize(candidate.Name)
	if err != nil {
		return "", err
	}

	parts := strings.Fields(strings.TrimSpace(candidate.Name))
	for _, part := range parts {
		for _, forbidden := range forbiddenTokens {
			if part == forbidden {
				return "", ErrForbiddenName
			}
		}
		if len([]rune(part)) > 100 || !partPattern.MatchString(part) {
			return "", ErrInvalidPart
		}
	}

	// Advisory only; the server repeats this check authoritatively.
	existing, err := c.List(ctx)
	if err != nil {
		return "", err
	}
	lowered := strings.ToLower(normalized)
	for _, p := range existing {
		if p.ID != candidate.ID && strings.ToLower(p.Name) == lowered {
			return "", ErrDuplicateName
		}
	}

	return normalized, nil
}

func (c *Client) save(ctx context.Context, method string, candidate Product) (*Product, error) {
	result := new(Product)
	apiErr := new(apiError)

	req := c.httpClient.R().
		SetContext(ctx).
		SetBody(candidate).
		SetResult(result).
		SetError(apiErr)

	var resp *resty.Response
	var err error
	if method == http.MethodPost {
		resp, err = req.Post("/products")
	} else {
		resp, err = req.Put("/products")
	}
	if err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}
	return result, nil
}

func (c *Client) patchStock(ctx context.Context, path string, amount int) (*Product, error) {
	result := new(Product)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]int{"amount": amount}).
		SetResult(result).
		SetError(apiErr).
		Patch(path)
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}
	return result, nil
}

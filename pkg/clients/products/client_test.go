package products_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchamizo/productos/internal/repository/memory"
	"github.com/jchamizo/productos/internal/server/handlers"
	"github.com/jchamizo/productos/internal/server/router"
	productsvc "github.com/jchamizo/productos/internal/service/products"
	"github.com/jchamizo/productos/pkg/clients/products"
	"github.com/jchamizo/productos/pkg/names"
)

func newTestClient(t *testing.T) *products.Client {
	t.Helper()

	repo := memory.New()
	svc := productsvc.NewService(repo, repo, nil)
	handler := handlers.NewProductHandler(svc, nil)
	server := httptest.NewServer(router.New(handler, nil))
	t.Cleanup(server.Close)

	return products.NewClient(server.URL)
}

func TestClientRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	created, err := client.Create(ctx, products.Product{Name: "juan carlos chamizo", Stock: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Juan Carlos CHAMIZO", created.Name)

	list, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := client.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.Name, got.Name)

	updated, err := client.Update(ctx, products.Product{ID: created.ID, Name: "juan pablo chamizo", Stock: 20})
	require.NoError(t, err)
	assert.Equal(t, "Juan Pablo CHAMIZO", updated.Name)

	bumped, err := client.IncrementStock(ctx, created.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 25, bumped.Stock)

	dropped, err := client.DecrementStock(ctx, created.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 22, dropped.Stock)

	set, err := client.SetStock(ctx, created.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, set.Stock)

	require.NoError(t, client.Delete(ctx, created.ID))

	gone, err := client.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestClientLocalGate(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	cases := []struct {
		name      string
		candidate products.Product
		wantErr   error
	}{
		{"stock out of range", products.Product{Name: "ana gil", Stock: 500}, products.ErrInvalidStock},
		{"digits", products.Product{Name: "agente 007", Stock: 1}, names.ErrContainsDigits},
		{"repeats", products.Product{Name: "aaaalonso", Stock: 1}, names.ErrExcessiveRepeats},
		{"denylist token", products.Product{Name: "Test subject", Stock: 1}, products.ErrForbiddenName},
		{"denylist exact", products.Product{Name: "N/A", Stock: 1}, products.ErrForbiddenName},
		{"invalid characters", products.Product{Name: "ana_gil perez", Stock: 1}, products.ErrInvalidPart},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Create(ctx, tc.candidate)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestClientDenylistIsCaseSensitive(t *testing.T) {
	client := newTestClient(t)

	// Lowercase "test" is not the placeholder token.
	created, err := client.Create(context.Background(), products.Product{Name: "test subject", Stock: 1})
	require.NoError(t, err)
	assert.Equal(t, "Test SUBJECT", created.Name)
}

func TestClientAdvisoryDuplicate(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	created, err := client.Create(ctx, products.Product{Name: "existing user", Stock: 1})
	require.NoError(t, err)

	_, err = client.Create(ctx, products.Product{Name: "EXISTING user", Stock: 1})
	assert.ErrorIs(t, err, products.ErrDuplicateName)

	// Updating a record under its own name passes the advisory check.
	_, err = client.Update(ctx, products.Product{ID: created.ID, Name: "existing user", Stock: 2})
	assert.NoError(t, err)
}

func TestClientSurfacesServerErrors(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.SetStock(ctx, 999, 10)
	var apiErr *products.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NotFound())
	assert.Contains(t, apiErr.Message, "not found")

	err = client.Delete(ctx, 999)
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NotFound())
}

func TestClientAccentedAndHyphenatedParts(t *testing.T) {
	client := newTestClient(t)

	created, err := client.Create(context.Background(), products.Product{Name: "josé maría garcía-lópez", Stock: 1})
	require.NoError(t, err)
	assert.Equal(t, "José María GARCÍA-LÓPEZ", created.Name)
}

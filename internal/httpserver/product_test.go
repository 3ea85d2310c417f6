package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidela/product-catalog/internal/models"
	"github.com/avidela/product-catalog/internal/transport"
)

func createProduct(t *testing.T, env *testEnv, payload map[string]any) models.Product {
	t.Helper()

	rec, c := env.doJSONRequest(http.MethodPost, "/products", payload)
	require.NoError(t, env.P.CreateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeBody[models.Product](t, rec)
}

func TestCreateProduct_AutoFillsCode(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	prod := createProduct(t, env, map[string]any{"name": "Teclado", "stock": "10", "price": 25.5})
	assert.NotEmpty(t, prod.ID)
	assert.Regexp(t, `^PROD-\d{3,}$`, prod.Code)

	// round trip: fetch by id and find it in the listing
	rec, c := env.doJSONRequest(http.MethodGet, "/products/"+prod.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(prod.ID)
	require.NoError(t, env.P.GetProduct(c))
	got := decodeBody[models.Product](t, rec)
	assert.Equal(t, prod.Code, got.Code)

	listRec, listC := env.doJSONRequest(http.MethodGet, "/products", nil)
	require.NoError(t, env.P.GetProducts(listC))
	items := decodeBody[[]models.Product](t, listRec)
	require.Len(t, items, 1)
	assert.Equal(t, prod.ID, items[0].ID)
}

func TestGetProducts_SortedByCode(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	for _, name := range []string{"uno", "dos", "tres"} {
		createProduct(t, env, map[string]any{"name": name, "price": 1})
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/products", nil)
	require.NoError(t, env.P.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	items := decodeBody[[]models.Product](t, rec)
	require.Len(t, items, 3)
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].Code, items[i].Code)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/products/missing", nil)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	err := env.P.GetProduct(c)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestReplaceProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	prod := createProduct(t, env, map[string]any{"name": "Monitor", "stock": "5", "price": 199.0})

	rec, c := env.doJSONRequest(http.MethodPut, "/products/"+prod.ID,
		map[string]any{"name": "Monitor 4K", "price": 299.0})
	c.SetParamNames("id")
	c.SetParamValues(prod.ID)
	require.NoError(t, env.P.ReplaceProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeBody[models.Product](t, rec)
	assert.Equal(t, "Monitor 4K", updated.Name)
	assert.Equal(t, 299.0, updated.Price)
	assert.Equal(t, prod.Code, updated.Code)
}

func TestReplaceProduct_NotFoundDoesNotCreate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPut, "/products/missing", map[string]any{"name": "ghost"})
	c.SetParamNames("id")
	c.SetParamValues("missing")
	err := env.P.ReplaceProduct(c)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))

	listRec, listC := env.doJSONRequest(http.MethodGet, "/products", nil)
	require.NoError(t, env.P.GetProducts(listC))
	items := decodeBody[[]models.Product](t, listRec)
	assert.Empty(t, items)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	prod := createProduct(t, env, map[string]any{"name": "temp", "price": 1.0})

	rec, c := env.doJSONRequest(http.MethodDelete, "/products/"+prod.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(prod.ID)
	require.NoError(t, env.P.DeleteProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeBody[transport.DeleteResponse](t, rec)
	assert.True(t, res.Deleted)

	_, c2 := env.doJSONRequest(http.MethodDelete, "/products/"+prod.ID, nil)
	c2.SetParamNames("id")
	c2.SetParamValues(prod.ID)
	err := env.P.DeleteProduct(c2)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestBackfillCodes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	require.NoError(t, env.DB.Create(&models.Product{ID: "p1", Name: "legacy"}).Error)

	rec, c := env.doJSONRequest(http.MethodPost, "/products/backfill-codes", nil)
	require.NoError(t, env.P.BackfillCodes(c))
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeBody[transport.BackfillResponse](t, rec)
	assert.Equal(t, 1, res.Updated)
}

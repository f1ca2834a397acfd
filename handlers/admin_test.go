package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
)

const validProduct = `{
	"name": " Oud Wood ",
	"brand": "Tom Ford",
	"price": 4100000,
	"image": "/img/oud.jpg",
	"description": "Rare oud",
	"category": "Unisex",
	"volume": "50ml"
}`

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/admin/products", "", "").Code)

	anon, _, err := env.tokens.GenerateJWT("anon-1", "", "anonymous")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/api/admin/products", "", anon).Code)

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/admin/products", "", env.adminToken(t)).Code)
}

func TestCreateProductRejectsBlankFieldsWithoutStoreCall(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/admin/products", `{"name":"  ","brand":"Dior"}`, env.adminToken(t))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Error)
	assert.Equal(t, []string{"name", "image", "description", "category"}, body.Fields)
	assert.Zero(t, env.products.Calls())

	rec = env.do(http.MethodPost, "/api/admin/products", `{"name":`, env.adminToken(t))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, env.products.Calls())
}

func TestProductCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(http.MethodPost, "/api/admin/products", validProduct, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Oud Wood", created.Name)
	assert.Equal(t, models.CategoryUnisex, created.Category)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.StoreWrites.WithLabelValues("products", "create", "ok")))

	rec = env.do(http.MethodPut, "/api/admin/products/"+created.ID, `{"name":"Oud Wood Intense","brand":"Tom Ford","image":"/img/oud.jpg","description":"Rare oud","category":"unisex"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Oud Wood Intense", updated.Name)
	assert.Nil(t, updated.Price)

	rec = env.do(http.MethodPut, "/api/admin/products/missing", validProduct, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, "/api/admin/products/"+created.ID, "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(http.MethodDelete, "/api/admin/products/"+created.ID, "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.StoreWrites.WithLabelValues("products", "delete", "error")))
}

func TestNewForms(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	var product models.Product
	rec := env.do(http.MethodGet, "/api/admin/products/new", "", token)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Empty(t, product.Name)
	assert.Equal(t, models.CategoryUnisex, product.Category)

	var post models.BlogPost
	rec = env.do(http.MethodGet, "/api/admin/blog/new", "", token)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Empty(t, post.Title)
	assert.Len(t, post.Date, len(models.DateLayout))
}

func TestBlogCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(http.MethodPost, "/api/admin/blog", `{"title":"Summer Scents: Top 5!","author":"Rina","excerpt":"Light picks","content":"<p>Citrus</p>","date":"2024-06-01"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "summer-scents-top-5", created.Slug)

	rec = env.do(http.MethodPost, "/api/admin/blog", `{"title":"Layering 101","author":"Rina","excerpt":"Again","content":"dup"}`, token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodPut, "/api/admin/blog/"+created.ID, `{"title":"Summer Scents","slug":"layering-101","author":"Rina","excerpt":"x","content":"y"}`, token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodPost, "/api/admin/blog", `{"title":"Bad date","author":"Rina","excerpt":"x","content":"y","date":"01/06/2024"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/admin/blog/"+created.ID, "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodDelete, "/api/admin/blog/"+created.ID, "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/admin/blog/"+created.ID, "", token).Code)
}

func TestBlogRejectsBlankFieldsWithoutStoreCall(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/admin/blog", `{"title":"","author":" "}`, env.adminToken(t))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, env.blog.Calls())
}

func TestExportProducts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/admin/products/export", "", env.adminToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, []string{"ID", "Name", "Brand", "Category", "Price", "Volume", "Rating", "Rating Source", "Featured", "Updated At"}, rows[0])
	// Sorted by name: Aventus first, Sauvage last.
	assert.Equal(t, "Aventus", rows[1][1])
	assert.Equal(t, "Rp 4.500.000", rows[1][4])
	assert.Equal(t, "Sauvage", rows[5][1])
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/doafacil/doafacil/internal/models"
	pkgmdw "github.com/doafacil/doafacil/internal/server/middleware"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeProductUC struct {
	lastRctx  models.RequestContext
	lastInput models.ProductInput
	product   *models.Product
	populated *models.PopulatedProduct
	err       error
}

func (f *fakeProductUC) Create(_ context.Context, rctx models.RequestContext, input models.ProductInput) (*models.Product, error) {
	f.lastRctx, f.lastInput = rctx, input
	return f.product, f.err
}

func (f *fakeProductUC) Index(context.Context, int64, int64) ([]*models.PopulatedProduct, error) {
	return []*models.PopulatedProduct{f.populated}, f.err
}

func (f *fakeProductUC) Show(context.Context, string) (*models.PopulatedProduct, error) {
	return f.populated, f.err
}

func (f *fakeProductUC) Update(_ context.Context, rctx models.RequestContext, _ string, input models.ProductInput) (*models.Product, error) {
	f.lastRctx, f.lastInput = rctx, input
	return f.product, f.err
}

func (f *fakeProductUC) Delete(context.Context, string) error {
	return f.err
}

func (f *fakeProductUC) ShowUserProducts(context.Context, models.RequestContext) ([]*models.Product, error) {
	return []*models.Product{f.product}, f.err
}

func (f *fakeProductUC) ShowRecieverProducts(context.Context, models.RequestContext) ([]*models.Product, error) {
	return []*models.Product{f.product}, f.err
}

func (f *fakeProductUC) Schedule(_ context.Context, rctx models.RequestContext, _ string) (string, error) {
	f.lastRctx = rctx
	return "agendado", f.err
}

func (f *fakeProductUC) ConcludeDonation(context.Context, models.RequestContext, string) (string, error) {
	return "concluído", f.err
}

func newTestServer(uc *fakeProductUC) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(zap.NewNop())
	handler := NewController(uc)

	// Stands in for BearerAuth in tests.
	fakeAuth := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", "64a0f2c8e13b4a5d6c7e8f90")
			return next(c)
		}
	}

	products := e.Group("/api/v1/products")
	products.GET("/:id", handler.Show)
	products.POST("", handler.Create, fakeAuth)
	return e
}

func sampleProduct() *models.Product {
	return &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        "Sofá",
		Description: "Sofá cinza",
		State:       "usado",
		PurchasedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Owner:       primitive.NewObjectID(),
		Available:   true,
		Images:      []string{"sofa.jpg"},
	}
}

func TestShowRelaysBusinessError(t *testing.T) {
	uc := &fakeProductUC{err: models.NewValidationError("ID Inválido: zzz")}
	e := newTestServer(uc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/zzz", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body models.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnprocessableEntity, body.Code)
	assert.Equal(t, "ID Inválido: zzz", body.Message)
}

func TestShowExcludesPassword(t *testing.T) {
	product := sampleProduct()
	uc := &fakeProductUC{populated: &models.PopulatedProduct{
		Product: product,
		Owner: &models.User{
			ID:       product.Owner,
			Name:     "Maria",
			Phone:    "11 99999-0000",
			Password: "super-secret-hash",
		},
	}}
	e := newTestServer(uc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+product.ID.Hex(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maria")
	assert.NotContains(t, rec.Body.String(), "super-secret-hash")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestCreateBindsFormAndFiles(t *testing.T) {
	uc := &fakeProductUC{product: sampleProduct()}
	e := newTestServer(uc)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "Sofá"))
	require.NoError(t, writer.WriteField("description", "Sofá cinza"))
	require.NoError(t, writer.WriteField("state", "usado"))
	require.NoError(t, writer.WriteField("purchased_at", "2020-01-01"))
	part, err := writer.CreateFormFile("images", "sofa.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("img"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "64a0f2c8e13b4a5d6c7e8f90", uc.lastRctx.UserID)
	require.Len(t, uc.lastRctx.Files, 1)
	assert.Equal(t, "sofa.jpg", uc.lastRctx.Files[0].Filename)
	assert.Equal(t, "Sofá", uc.lastInput.Name)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), uc.lastInput.PurchasedAt)
}

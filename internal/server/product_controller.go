package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/doafacil/doafacil/internal/models"
	"github.com/doafacil/doafacil/internal/server/middleware"
	"github.com/doafacil/doafacil/internal/usecase"
	"github.com/labstack/echo/v4"
)

type Controller interface {
	Create(c echo.Context) error
	Index(c echo.Context) error
	Show(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
	Mine(c echo.Context) error
	Scheduled(c echo.Context) error
	Schedule(c echo.Context) error
	ConcludeDonation(c echo.Context) error
	Health(c echo.Context) error
}

type controller struct {
	products usecase.ProductUsecase
}

func NewController(products usecase.ProductUsecase) Controller {
	return &controller{
		products: products,
	}
}

// requestContext assembles the explicit per-request state: the principal set
// by the auth middleware and any uploaded files.
func requestContext(c echo.Context) models.RequestContext {
	return models.RequestContext{
		UserID: middleware.UserID(c),
		Files:  middleware.UploadedFiles(c),
	}
}

// productInput reads the writable product fields from the multipart form.
// A missing or unparsable date is left as the zero time so the usecase
// reports it as a missing field.
func productInput(c echo.Context) models.ProductInput {
	input := models.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		State:       c.FormValue("state"),
	}
	if raw := c.FormValue("purchased_at"); raw != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				input.PurchasedAt = t
				break
			}
		}
	}
	return input
}

func (h *controller) Create(c echo.Context) error {
	ctx := c.Request().Context()
	product, err := h.products.Create(ctx, requestContext(c), productInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *controller) Index(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	ctx := c.Request().Context()
	products, err := h.products.Index(ctx, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *controller) Show(c echo.Context) error {
	ctx := c.Request().Context()
	product, err := h.products.Show(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *controller) Update(c echo.Context) error {
	ctx := c.Request().Context()
	product, err := h.products.Update(ctx, requestContext(c), c.Param("id"), productInput(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *controller) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.products.Delete(ctx, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *controller) Mine(c echo.Context) error {
	ctx := c.Request().Context()
	products, err := h.products.ShowUserProducts(ctx, requestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *controller) Scheduled(c echo.Context) error {
	ctx := c.Request().Context()
	products, err := h.products.ShowRecieverProducts(ctx, requestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *controller) Schedule(c echo.Context) error {
	ctx := c.Request().Context()
	message, err := h.products.Schedule(ctx, requestContext(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

func (h *controller) ConcludeDonation(c echo.Context) error {
	ctx := c.Request().Context()
	message, err := h.products.ConcludeDonation(ctx, requestContext(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "doafacil",
	})
}

func queryInt(c echo.Context, name string, def int64) int64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}

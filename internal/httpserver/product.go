package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/avidela/product-catalog/internal/events"
	"github.com/avidela/product-catalog/internal/logging"
	"github.com/avidela/product-catalog/internal/models"
	"github.com/avidela/product-catalog/internal/service"
	"github.com/avidela/product-catalog/internal/transport"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	product, err := h.Svc.GetProduct(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "id", c.Param("id"))
			return echo.NewHTTPError(http.StatusNotFound, "product with this id does not exist")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	prod, err := h.Svc.CreateProduct(ctx, &models.Product{
		Name:     req.Name,
		Stock:    req.Stock,
		Price:    req.Price,
		Code:     req.Code,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid product fields")
		}
		l.Error("create_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	publishEvent(ctx, h.Producer, events.TopicProducts, prod.ID, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"code":      prod.Code,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) ReplaceProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.replace_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	prod, err := h.Svc.ReplaceProduct(ctx, models.Product{
		Name:     req.Name,
		Stock:    req.Stock,
		Price:    req.Price,
		Code:     req.Code,
		ImageURL: req.ImageURL,
	}, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("replace_product_failed", "status", 404, "id", c.Param("id"))
			return echo.NewHTTPError(http.StatusNotFound, "product with this id does not exist")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid product fields")
		default:
			l.Error("replace_product_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	publishEvent(ctx, h.Producer, events.TopicProducts, prod.ID, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id := c.Param("id")
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_product_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "product with this id does not exist")
		}
		l.Error("delete_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	publishEvent(ctx, h.Producer, events.TopicProducts, id, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.JSON(http.StatusOK, transport.DeleteResponse{Deleted: true})
}

func (h *CatalogHTTP) BackfillCodes(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.backfill_codes")

	updated, err := h.Svc.BackfillCodes(ctx)
	if err != nil {
		l.Error("backfill_failed", "status", 500, "updated", updated, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot backfill codes")
	}

	return c.JSON(http.StatusOK, transport.BackfillResponse{Updated: updated})
}

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/productmgmt/product-api/internal/core/domain"
	"github.com/productmgmt/product-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProduct(c.Request().Context(), id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /products and answers 201 with a Location header.
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product := &domain.Product{}
	req.toInput().Apply(product)

	if err := h.service.CreateProduct(c.Request().Context(), product); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/products/%d", product.ID))
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /products/:id. The product must exist; every field but
// the id is replaced.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()
	product, err := h.service.GetProduct(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	req.toInput().Apply(product)
	if err := h.service.UpdateProduct(ctx, product); err != nil {
		// deleted between the lookup and the write
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.service.GetProduct(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}

	if err := h.service.DeleteProduct(ctx, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func productID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}

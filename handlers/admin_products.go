package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/database"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/repository"
)

// NewProductForm returns the blank defaults the create form starts from.
func (h *Handler) NewProductForm(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Product{Category: models.CategoryUnisex})
}

func (h *Handler) AdminListProducts(c echo.Context) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	products, err := h.products.FindAll(ctx)
	if err != nil {
		return h.storeFailure(c, "Failed to fetch products", err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *Handler) AdminGetProduct(c echo.Context) error {
	product, err := h.findProduct(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// bindProduct reads and locally validates a product form submission.
func bindProduct(c echo.Context) (*models.Product, error) {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return nil, apiError(http.StatusBadRequest, "Invalid request format")
	}
	product.ID = ""
	product.CreatedAt = nil
	product.UpdatedAt = nil
	product.Normalize()
	if err := product.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &product, nil
}

func (h *Handler) CreateProduct(c echo.Context) error {
	product, err := bindProduct(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	created, err := h.products.Create(ctx, product)
	h.metrics.ObserveWrite(database.ProductsCollection, "create", err)
	if err != nil {
		return h.storeFailure(c, "Failed to create product", err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateProduct(c echo.Context) error {
	product, err := bindProduct(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	updated, err := h.products.Update(ctx, c.Param("id"), product)
	h.metrics.ObserveWrite(database.ProductsCollection, "update", err)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "Product not found")
	case err != nil:
		return h.storeFailure(c, "Failed to update product", err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(c echo.Context) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	err := h.products.Delete(ctx, c.Param("id"))
	h.metrics.ObserveWrite(database.ProductsCollection, "delete", err)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "Product not found")
	case err != nil:
		return h.storeFailure(c, "Failed to delete product", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted"})
}

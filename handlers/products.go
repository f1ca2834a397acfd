package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/catalog"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/repository"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/utils"
)

const maxPageSize = 100

func parseSort(raw string) (catalog.SortKey, bool) {
	switch key := catalog.SortKey(raw); key {
	case "":
		return catalog.SortDefault, true
	case catalog.SortDefault, catalog.SortName, catalog.SortPriceAsc, catalog.SortPriceDesc, catalog.SortRating:
		return key, true
	}
	return "", false
}

func parseListParams(c echo.Context) (catalog.Params, error) {
	params := catalog.Params{
		Filter: catalog.Filter{
			Brand:    c.QueryParam("brand"),
			Search:   c.QueryParam("q"),
			Category: models.Category(c.QueryParam("category")),
		},
		Page:     1,
		PageSize: catalog.PageSize,
	}

	if raw := c.QueryParam("minRating"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || r < 0 {
			return params, errors.New("Invalid minRating")
		}
		params.MinRating = r
	}
	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return params, errors.New("Invalid featured flag")
		}
		params.FeaturedOnly = featured
	}
	if params.Category != "" && params.Category != "all" && !params.Category.Valid() {
		return params, errors.New("Invalid category")
	}

	key, ok := parseSort(c.QueryParam("sort"))
	if !ok {
		return params, errors.New("Invalid sort")
	}
	params.Sort = key

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, errors.New("Invalid page")
		}
		params.Page = page
	}
	if raw := c.QueryParam("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > maxPageSize {
			return params, errors.New("Invalid pageSize")
		}
		params.PageSize = size
	}
	return params, nil
}

// ListProducts serves the filterable, paginated catalog listing.
func (h *Handler) ListProducts(c echo.Context) error {
	params, err := parseListParams(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	products, err := h.products.FindAll(ctx)
	if err != nil {
		return h.storeFailure(c, "Failed to fetch products", err)
	}
	return c.JSON(http.StatusOK, catalog.Query(products, params))
}

// FeaturedProducts serves the home page selection.
func (h *Handler) FeaturedProducts(c echo.Context) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	products, err := h.products.FindAll(ctx)
	if err != nil {
		return h.storeFailure(c, "Failed to fetch products", err)
	}
	return c.JSON(http.StatusOK, catalog.Apply(products, catalog.Filter{FeaturedOnly: true}))
}

func (h *Handler) ListBrands(c echo.Context) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	products, err := h.products.FindAll(ctx)
	if err != nil {
		return h.storeFailure(c, "Failed to fetch products", err)
	}
	return c.JSON(http.StatusOK, catalog.Brands(products))
}

func (h *Handler) GetProduct(c echo.Context) error {
	product, err := h.findProduct(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// ProductInquiry returns the chat deep link for a product.
func (h *Handler) ProductInquiry(c echo.Context) error {
	product, err := h.findProduct(c)
	if err != nil {
		return err
	}

	link, err := utils.InquiryURL(h.chatPhone, *product)
	if err != nil {
		h.log.Warn("Chat inquiry link unavailable", zap.Error(err))
		return errorJSON(c, http.StatusServiceUnavailable, "Chat inquiries are not available")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"url":     link,
		"message": utils.InquiryMessage(*product),
	})
}

// findProduct loads the :id product. The returned error is an HTTP error ready for echo.
func (h *Handler) findProduct(c echo.Context) (*models.Product, error) {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	product, err := h.products.FindByID(ctx, c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, apiError(http.StatusNotFound, "Product not found")
	case err != nil:
		return nil, h.remoteError("Failed to fetch product", err)
	}
	return product, nil
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/content"
)

func (h *Handler) ListPages(c echo.Context) error {
	return c.JSON(http.StatusOK, content.Pages())
}

func (h *Handler) GetPage(c echo.Context) error {
	page, ok := content.Find(c.Param("slug"))
	if !ok {
		return errorJSON(c, http.StatusNotFound, "Page not found")
	}
	return c.JSON(http.StatusOK, page)
}

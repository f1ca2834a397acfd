package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/repository"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/utils"
)

// ListBlogPosts returns every post, newest first.
func (h *Handler) ListBlogPosts(c echo.Context) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	posts, err := h.blog.FindAll(ctx)
	if err != nil {
		return h.storeFailure(c, "Failed to fetch blog posts", err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *Handler) GetBlogPost(c echo.Context) error {
	slug := utils.Slugify(c.Param("slug"))
	if slug == "" {
		return errorJSON(c, http.StatusNotFound, "Blog post not found")
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	post, err := h.blog.FindBySlug(ctx, slug)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "Blog post not found")
	case err != nil:
		return h.storeFailure(c, "Failed to fetch blog post", err)
	}
	return c.JSON(http.StatusOK, post)
}

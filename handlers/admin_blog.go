package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/database"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/repository"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/utils"
)

func (h *Handler) NewBlogPostForm(c echo.Context) error {
	return c.JSON(http.StatusOK, models.BlogPost{Date: h.now().Format(models.DateLayout)})
}

func (h *Handler) AdminListBlogPosts(c echo.Context) error {
	return h.ListBlogPosts(c)
}

func (h *Handler) AdminGetBlogPost(c echo.Context) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	post, err := h.blog.FindByID(ctx, c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "Blog post not found")
	case err != nil:
		return h.storeFailure(c, "Failed to fetch blog post", err)
	}
	return c.JSON(http.StatusOK, post)
}

// bindBlogPost reads a post form; a blank slug is derived from the title.
func (h *Handler) bindBlogPost(c echo.Context) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := c.Bind(&post); err != nil {
		return nil, apiError(http.StatusBadRequest, "Invalid request format")
	}
	post.ID = ""
	post.CreatedAt = nil
	post.UpdatedAt = nil
	post.Normalize()

	if post.Slug == "" {
		post.Slug = post.Title
	}
	post.Slug = utils.Slugify(post.Slug)
	if post.Date == "" {
		post.Date = h.now().Format(models.DateLayout)
	}

	if err := post.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &post, nil
}

func (h *Handler) CreateBlogPost(c echo.Context) error {
	post, err := h.bindBlogPost(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	created, err := h.blog.Create(ctx, post)
	h.metrics.ObserveWrite(database.BlogCollection, "create", err)
	switch {
	case errors.Is(err, repository.ErrSlugTaken):
		return errorJSON(c, http.StatusConflict, "Slug already in use")
	case err != nil:
		return h.storeFailure(c, "Failed to create blog post", err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateBlogPost(c echo.Context) error {
	post, err := h.bindBlogPost(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	updated, err := h.blog.Update(ctx, c.Param("id"), post)
	h.metrics.ObserveWrite(database.BlogCollection, "update", err)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "Blog post not found")
	case errors.Is(err, repository.ErrSlugTaken):
		return errorJSON(c, http.StatusConflict, "Slug already in use")
	case err != nil:
		return h.storeFailure(c, "Failed to update blog post", err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteBlogPost(c echo.Context) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	err := h.blog.Delete(ctx, c.Param("id"))
	h.metrics.ObserveWrite(database.BlogCollection, "delete", err)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "Blog post not found")
	case err != nil:
		return h.storeFailure(c, "Failed to delete blog post", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Blog post deleted"})
}

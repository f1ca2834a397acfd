package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/metrics"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/realtime"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/repository"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/sessions"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/utils"
)

const storeTimeout = 10 * time.Second

type Options struct {
	Products repository.ProductStore
	Blog     repository.BlogStore
	Admins   repository.AdminStore
	Tokens   *utils.TokenIssuer
	Revoker  sessions.Revoker

	ProductFeed *realtime.Hub[[]models.Product]
	BlogFeed    *realtime.Hub[[]models.BlogPost]

	Metrics   *metrics.Metrics
	Log       *zap.Logger
	ChatPhone string
}

type Handler struct {
	products repository.ProductStore
	blog     repository.BlogStore
	admins   repository.AdminStore
	tokens   *utils.TokenIssuer
	revoker  sessions.Revoker

	productFeed *realtime.Hub[[]models.Product]
	blogFeed    *realtime.Hub[[]models.BlogPost]

	metrics   *metrics.Metrics
	log       *zap.Logger
	chatPhone string
	now       func() time.Time

	streamsDone chan struct{}
	closeOnce   sync.Once
}

func New(opts Options) *Handler {
	h := &Handler{
		products:    opts.Products,
		blog:        opts.Blog,
		admins:      opts.Admins,
		tokens:      opts.Tokens,
		revoker:     opts.Revoker,
		productFeed: opts.ProductFeed,
		blogFeed:    opts.BlogFeed,
		metrics:     opts.Metrics,
		log:         opts.Log,
		chatPhone:   opts.ChatPhone,
		now:         time.Now,
		streamsDone: make(chan struct{}),
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.revoker == nil {
		h.revoker = sessions.NoopRevoker{}
	}
	if h.productFeed == nil {
		h.productFeed = realtime.NewHub[[]models.Product]()
	}
	if h.blogFeed == nil {
		h.blogFeed = realtime.NewHub[[]models.BlogPost]()
	}
	return h
}

// CloseStreams ends every open snapshot stream. http.Server.Shutdown does not
// cancel in-flight requests, so register it with RegisterOnShutdown.
func (h *Handler) CloseStreams() {
	h.closeOnce.Do(func() { close(h.streamsDone) })
}

// Health reports liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) storeCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// storeFailure logs a remote call failure and answers with the status banner text.
func (h *Handler) storeFailure(c echo.Context, message string, err error) error {
	h.log.Error(message, zap.Error(err), zap.String("path", c.Request().URL.Path))
	return errorJSON(c, http.StatusInternalServerError, message)
}

// apiError is returned from helpers so the echo error handler writes {"error": message}.
func apiError(status int, message string) error {
	return echo.NewHTTPError(status, map[string]string{"error": message})
}

func (h *Handler) remoteError(message string, err error) error {
	h.log.Error(message, zap.Error(err))
	return apiError(http.StatusInternalServerError, message)
}

// validationError reports the fields a form submission left blank or invalid.
func validationError(err error) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	}
	return apiError(http.StatusBadRequest, err.Error())
}

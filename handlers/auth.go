package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/middleware"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/repository"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/utils"
)

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CustomTokenRequest struct {
	Token string `json:"token"`
}

type SessionUser struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Provider  string `json:"provider"`
	Anonymous bool   `json:"anonymous"`
}

type SessionResponse struct {
	Token     string      `json:"token,omitempty"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      SessionUser `json:"user"`
}

func sessionResponse(token string, claims *utils.Claims) SessionResponse {
	return SessionResponse{
		Token:     token,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
		User: SessionUser{
			ID:        claims.UserID,
			Email:     claims.Email,
			Provider:  claims.Provider,
			Anonymous: claims.Anonymous(),
		},
	}
}

func (h *Handler) issueSession(c echo.Context, status int, userID, email, provider string) error {
	token, claims, err := h.tokens.GenerateJWT(userID, email, provider)
	if err != nil {
		return h.storeFailure(c, "Failed to generate token", err)
	}
	return c.JSON(status, sessionResponse(token, claims))
}

// SignIn is the email/password path.
func (h *Handler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return errorJSON(c, http.StatusBadRequest, "Email and password are required")
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	admin, err := h.admins.FindByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errorJSON(c, http.StatusUnauthorized, "Invalid email or password")
	case err != nil:
		return h.storeFailure(c, "Failed to sign in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return errorJSON(c, http.StatusUnauthorized, "Invalid email or password")
	}

	h.log.Info("Admin signed in", zap.String("admin_id", admin.ID))
	return h.issueSession(c, http.StatusOK, admin.ID, admin.Email, utils.ProviderPassword)
}

// AnonymousSignIn issues a session for a fresh guest identity.
func (h *Handler) AnonymousSignIn(c echo.Context) error {
	return h.issueSession(c, http.StatusCreated, "anon-"+uuid.NewString(), "", utils.ProviderAnonymous)
}

// CustomTokenSignIn exchanges a token minted by a trusted backend for a session.
func (h *Handler) CustomTokenSignIn(c echo.Context) error {
	var req CustomTokenRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		return errorJSON(c, http.StatusBadRequest, "Token is required")
	}

	claims, err := h.tokens.ValidateCustomToken(strings.TrimSpace(req.Token))
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "Invalid custom token")
	}
	return h.issueSession(c, http.StatusOK, claims.UID, claims.Email, utils.ProviderCustom)
}

// Session returns the caller's current auth state.
func (h *Handler) Session(c echo.Context) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return errorJSON(c, http.StatusUnauthorized, "Invalid session")
	}
	return c.JSON(http.StatusOK, sessionResponse("", claims))
}

// SignOut revokes the caller's token for the rest of its lifetime.
func (h *Handler) SignOut(c echo.Context) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return errorJSON(c, http.StatusUnauthorized, "Invalid session")
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	if err := h.revoker.Revoke(ctx, claims.Id, time.Unix(claims.ExpiresAt, 0)); err != nil {
		return h.storeFailure(c, "Failed to sign out", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Signed out"})
}

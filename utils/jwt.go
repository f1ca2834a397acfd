package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const (
	ProviderPassword  = "password"
	ProviderAnonymous = "anonymous"
	ProviderCustom    = "custom"
)

var ErrInvalidToken = errors.New("invalid token")

// MaxCustomTokenLifetime bounds how far in the future a custom token may expire.
const MaxCustomTokenLifetime = time.Hour

// Claims is the session token payload.
type Claims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email,omitempty"`
	Provider string `json:"provider"`
	jwt.StandardClaims
}

func (c *Claims) Anonymous() bool {
	return c.Provider == ProviderAnonymous
}

// CustomClaims is what a trusted backend puts in a custom sign-in token.
type CustomClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	jwt.StandardClaims
}

type TokenIssuer struct {
	secret       []byte
	customSecret []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewTokenIssuer(secret, customSecret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{
		secret:       []byte(secret),
		customSecret: []byte(customSecret),
		ttl:          ttl,
		now:          time.Now,
	}
}

// GenerateJWT signs a session token for the user.
func (t *TokenIssuer) GenerateJWT(userID, email, provider string) (string, *Claims, error) {
	now := t.now()
	claims := &Claims{
		UserID:   userID,
		Email:    email,
		Provider: provider,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (t *TokenIssuer) ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if err := parseHMAC(tokenString, claims, t.secret); err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.Id == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateCustomToken verifies a token minted with the custom-token secret.
func (t *TokenIssuer) ValidateCustomToken(tokenString string) (*CustomClaims, error) {
	if len(t.customSecret) == 0 {
		return nil, fmt.Errorf("%w: custom tokens disabled", ErrInvalidToken)
	}
	claims := &CustomClaims{}
	if err := parseHMAC(tokenString, claims, t.customSecret); err != nil {
		return nil, err
	}
	if claims.UID == "" {
		return nil, fmt.Errorf("%w: missing uid", ErrInvalidToken)
	}
	// jwt only checks exp when present; custom tokens must carry one.
	if claims.ExpiresAt == 0 {
		return nil, fmt.Errorf("%w: missing exp", ErrInvalidToken)
	}
	if time.Unix(claims.ExpiresAt, 0).After(t.now().Add(MaxCustomTokenLifetime)) {
		return nil, fmt.Errorf("%w: exp too far in the future", ErrInvalidToken)
	}
	return claims, nil
}

func parseHMAC(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

// DevUserID is the identity injected by DevAuthMiddleware.
var DevUserID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

// Claims are the token claims issued by the hosted auth provider. Subject
// carries the user's UUID.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type JWTConfig struct {
	Issuer   string
	Audience string
	// Secret is the provider's HS256 signing secret.
	Secret []byte
}

// ParseToken validates tokenStr and returns the user id from its subject.
func ParseToken(cfg JWTConfig, tokenStr string) (uuid.UUID, *Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return cfg.Secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return uuid.Nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil || uid == uuid.Nil {
		return uuid.Nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "token subject is not a user id")
	}
	return uid, claims, nil
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
	}
	return strings.TrimSpace(token), nil
}

func withUser(c echo.Context, uid uuid.UUID, email string) {
	ctx := c.Request().Context()
	ctx = context.WithValue(ctx, UserIDKey, uid)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	c.SetRequest(c.Request().WithContext(ctx))
}

// JWTMiddleware requires a valid bearer token on every request.
func JWTMiddleware(cfg JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr, err := bearerToken(c)
			if err != nil {
				return err
			}
			uid, claims, err := ParseToken(cfg, tokenStr)
			if err != nil {
				return err
			}
			withUser(c, uid, claims.Email)
			return next(c)
		}
	}
}

// DevAuthMiddleware lets requests without a token through as DevUserID.
// A token that is present is still validated when a secret is configured.
func DevAuthMiddleware(cfg JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" || len(cfg.Secret) == 0 {
				withUser(c, DevUserID, "dev@localhost")
				return next(c)
			}
			return JWTMiddleware(cfg)(next)(c)
		}
	}
}

// UserIDFromContext returns the authenticated user, or uuid.Nil.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	uid, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return uid
}

func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

// RequireUser returns the caller's id or a 401 error for handlers.
func RequireUser(c echo.Context) (uuid.UUID, error) {
	uid := UserIDFromContext(c.Request().Context())
	if uid == uuid.Nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return uid, nil
}

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	models "github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

// UserLookup confirms that the subject of a valid token still exists.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthMiddleware struct {
	jwtKey []byte
	users  UserLookup
}

// NewAuthMiddleware verifies bearer tokens signed with jwtKey. users may be
// nil, in which case a valid signature is enough.
func NewAuthMiddleware(jwtKey []byte, users UserLookup) *AuthMiddleware {

	return &AuthMiddleware{jwtKey: jwtKey, users: users}

}

// Authenticate answers 401 when no token is sent and 403 when the token
// cannot be verified.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		// Token is of format : "Bearer <token>"
		scheme, tokenString, _ := strings.Cut(r.Header.Get("Authorization"), " ")
		tokenString = strings.TrimSpace(tokenString)

		if tokenString == "" {
			logger.Warn("Missing access token")
			response.Error(w, errors.UnauthorizedError("Access token required"))
			return
		}

		if scheme != "Bearer" {
			logger.Warn("Invalid authorization header format", slog.String("scheme", scheme))
			response.Error(w, errors.ForbiddenError("Invalid token"))
			return
		}

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			return m.jwtKey, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

		if err != nil || !token.Valid {
			logger.Warn("JWT verification failed", slog.Any("error", err))
			response.Error(w, errors.ForbiddenError("Invalid token"))
			return
		}

		if m.users != nil {
			if _, err := m.users.GetUserByID(r.Context(), claims.UserID); err != nil {
				if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeNotFound {
					logger.Warn("Token for unknown user", slog.String("userId", claims.UserID.String()))
					response.Error(w, errors.UnauthorizedError("User not found"))
					return
				}

				logger.Error("User lookup failed", slog.String("error", err.Error()))
				response.Error(w, err)
				return
			}
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestScopedLogger := logger.With(slog.String("userId", claims.UserID.String()))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		requestScopedLogger.Debug("User authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)
	return claims, ok && claims != nil
}

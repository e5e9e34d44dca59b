package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/psikobank/user-registry/internal/core/domain"
	"github.com/psikobank/user-registry/internal/core/ports"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Auth validates the bearer JWT, rejects revoked tokens and stores the claims
// on the context.
func Auth(jwtSecret string, denylist ports.TokenDenylist, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			var tc tokenClaims
			tkn, err := jwt.ParseWithClaims(parts[1], &tc, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if tc.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if tc.ID != "" && denylist != nil {
				revoked, err := denylist.IsRevoked(c.Request().Context(), tc.ID)
				if err != nil {
					log.Error().Err(err).Msg("token revocation lookup failed")
					return echo.NewHTTPError(http.StatusServiceUnavailable, "authentication unavailable")
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
				}
			}

			var expiresAt time.Time
			if tc.ExpiresAt != nil {
				expiresAt = tc.ExpiresAt.Time
			}
			SetClaims(c, ports.TokenClaims{
				UserID:    tc.Subject,
				Role:      domain.Role(tc.Role),
				TokenID:   tc.ID,
				ExpiresAt: expiresAt,
			})

			return next(c)
		}
	}
}

// Requester loads the user behind the verified token. A token whose user no
// longer exists is treated as unauthenticated.
func Requester(repo ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := repo.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
				}
				return err
			}

			SetRequester(c, user)
			return next(c)
		}
	}
}

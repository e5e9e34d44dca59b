package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/psikobank/user-registry/internal/core/domain"
	"github.com/psikobank/user-registry/internal/core/ports"
)

type stubDenylist struct {
	revoked map[string]bool
	err     error
}

func (d *stubDenylist) Revoke(context.Context, string, time.Time) error { return nil }

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return d.revoked[tokenID], d.err
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  "42",
		"role": "admin",
		"jti":  "token-1",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

// runAuth executes the middleware and returns the recorder plus whether next ran.
func runAuth(t *testing.T, header string, denylist ports.TokenDenylist, next echo.HandlerFunc) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret", denylist, zerolog.Nop())(func(c echo.Context) error {
		called = true
		if next != nil {
			return next(c)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, "secret", validClaims())

	rec, called := runAuth(t, "Bearer "+token, &stubDenylist{}, func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			t.Fatalf("claims not set")
		}
		if claims.UserID != "42" || claims.Role != domain.RoleAdmin || claims.TokenID != "token-1" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
		if claims.ExpiresAt.IsZero() {
			t.Fatalf("expiry not carried over")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noSubject := validClaims()
	delete(noSubject, "sub")
	noExpiry := validClaims()
	delete(noExpiry, "exp")

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"non bearer scheme", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signToken(t, "other", validClaims())},
		{"expired", "Bearer " + signToken(t, "secret", expired)},
		{"no subject", "Bearer " + signToken(t, "secret", noSubject)},
		{"no expiry", "Bearer " + signToken(t, "secret", noExpiry)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, called := runAuth(t, tc.header, &stubDenylist{}, nil)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_RejectsNoneAlgorithm(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rec, called := runAuth(t, "Bearer "+unsigned, &stubDenylist{}, nil)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for alg=none, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	token := signToken(t, "secret", validClaims())

	rec, called := runAuth(t, "Bearer "+token, &stubDenylist{revoked: map[string]bool{"token-1": true}}, nil)
	if called {
		t.Fatalf("revoked token must not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_DenylistUnavailable(t *testing.T) {
	token := signToken(t, "secret", validClaims())

	rec, called := runAuth(t, "Bearer "+token, &stubDenylist{err: errors.New("redis down")}, nil)
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

type stubFinder struct {
	ports.UserRepository
	users map[string]*domain.User
	err   error
}

func (s *stubFinder) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func TestRequesterMiddleware(t *testing.T) {
	repo := &stubFinder{users: map[string]*domain.User{
		"42": {ID: "42", Role: domain.RoleAdmin, Email: "admin@x.com"},
	}}

	t.Run("loads the user", func(t *testing.T) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		SetClaims(c, ports.TokenClaims{UserID: "42"})

		var got *domain.User
		err := Requester(repo)(func(c echo.Context) error {
			got, _ = RequesterFrom(c)
			return nil
		})(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.Email != "admin@x.com" {
			t.Fatalf("requester not stored: %+v", got)
		}
	})

	t.Run("deleted user is unauthenticated", func(t *testing.T) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		SetClaims(c, ports.TokenClaims{UserID: "7"})

		err := Requester(repo)(func(echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %v", err)
		}
	})

	t.Run("missing claims", func(t *testing.T) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		err := Requester(repo)(func(echo.Context) error { return nil })(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %v", err)
		}
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		SetClaims(c, ports.TokenClaims{UserID: "42"})

		boom := errors.New("db down")
		err := Requester(&stubFinder{err: boom})(func(echo.Context) error { return nil })(c)
		if !errors.Is(err, boom) {
			t.Fatalf("expected storage error, got %v", err)
		}
	})
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
)

type stubAuthService struct {
	tokens map[string]*domain.User
}

func (s *stubAuthService) Register(context.Context, form.UserPayload) (*domain.User, *domain.APIToken, error) {
	return nil, nil, errors.New("not implemented")
}

func (s *stubAuthService) Login(context.Context, string, string) (*domain.User, *domain.APIToken, error) {
	return nil, nil, errors.New("not implemented")
}

func (s *stubAuthService) Authenticate(_ context.Context, token string) (*domain.User, error) {
	if u, ok := s.tokens[token]; ok {
		return u, nil
	}
	return nil, domain.ErrUnauthorized
}

func newAuthStub() *stubAuthService {
	return &stubAuthService{tokens: map[string]*domain.User{
		"good": {ID: 1, Name: "alice", Roles: []string{}},
	}}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(newAuthStub())
	handler := mw(func(c echo.Context) error {
		called = true
		user, ok := c.Get(UserKey).(*domain.User)
		if !ok || user.Name != "alice" {
			t.Fatalf("user not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token good",
		"empty token":    "Bearer  ",
		"unknown token":  "Bearer bad",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			mw := Auth(newAuthStub())
			handler := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestEntityMiddleware(t *testing.T) {
	find := func(_ context.Context, id uint) (*domain.Author, error) {
		if id == 7 {
			return &domain.Author{ID: 7, Name: "Le Guin"}, nil
		}
		return nil, domain.NewNotFound(domain.EntityAuthor, id)
	}

	cases := []struct {
		param   string
		wantErr func(error) bool
	}{
		{"7", func(err error) bool { return err == nil }},
		{"8", func(err error) bool { return errors.Is(err, domain.ErrNotFound) }},
		{"abc", func(err error) bool { return errors.Is(err, echo.ErrNotFound) }},
		{"-1", func(err error) bool { return errors.Is(err, echo.ErrNotFound) }},
		{"+7", func(err error) bool { return errors.Is(err, echo.ErrNotFound) }},
	}
	for _, tc := range cases {
		t.Run(tc.param, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			c.SetParamNames("id")
			c.SetParamValues(tc.param)

			var got *domain.Author
			handler := Entity("author", find)(func(c echo.Context) error {
				got = c.Get("author").(*domain.Author)
				return nil
			})

			err := handler(c)
			if !tc.wantErr(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			if err == nil && (got == nil || got.ID != 7) {
				t.Fatalf("entity not injected: %+v", got)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(0.001, 2))
	e.POST("/api/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected burst of 2 then 429, got %v", codes)
	}

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a different client, got %d", rec.Code)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, payload form.UserPayload) (*domain.User, *domain.APIToken, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.User, *domain.APIToken, error)
}

func (s *stubAuthService) Register(ctx context.Context, payload form.UserPayload) (*domain.User, *domain.APIToken, error) {
	return s.registerFn(ctx, payload)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.APIToken, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUnauthorized
}

// envelopeOf decodes a success envelope and returns its message.
func envelopeOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "success" {
		t.Fatalf("expected success status, got %v", resp["status"])
	}
	msg, ok := resp["message"].(map[string]any)
	if !ok {
		t.Fatalf("expected message object, got %v", resp["message"])
	}
	return msg
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, p form.UserPayload) (*domain.User, *domain.APIToken, error) {
			if p.Name != "alice" || p.Email != "a@example.com" || p.Password != "secret1" {
				t.Fatalf("unexpected payload: %+v", p)
			}
			return &domain.User{ID: 1, Name: p.Name, Email: p.Email}, &domain.APIToken{Token: "tok"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/register", `{"name":"alice","email":"a@example.com","password":"secret1"}`), rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	msg := envelopeOf(t, rec)
	if msg["text"] != "User alice was successfully registered." {
		t.Fatalf("unexpected text: %v", msg["text"])
	}
	data := msg["data"].(map[string]any)
	if data["name"] != "alice" || data["email"] != "a@example.com" || data["token"] != "tok" {
		t.Fatalf("unexpected data: %+v", data)
	}
	if _, leaked := data["password"]; leaked {
		t.Fatalf("password must never be serialized")
	}
}

func TestAuthHandler_Register_ValidationPassesThrough(t *testing.T) {
	e := echo.New()
	want := form.FieldError("email", form.MsgAlreadyUsed)
	stub := &stubAuthService{
		registerFn: func(context.Context, form.UserPayload) (*domain.User, *domain.APIToken, error) {
			return nil, nil, want
		},
	}
	handler := NewAuthHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/register", `{"name":"bob"}`), httptest.NewRecorder())
	if err := handler.Register(c); !errors.Is(err, want) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, *domain.APIToken, error) {
			if email != "a@example.com" || password != "secret1" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &domain.User{Name: "alice"}, &domain.APIToken{Token: "fresh"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", `{"email":"a@example.com","password":"secret1"}`), rec)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	msg := envelopeOf(t, rec)
	if msg["text"] != "User alice was successfully logged in." {
		t.Fatalf("unexpected text: %v", msg["text"])
	}
	if data := msg["data"].(map[string]any); data["token"] != "fresh" || len(data) != 1 {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.User, *domain.APIToken, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", `{"email":"x@example.com","password":"nope"}`), httptest.NewRecorder())
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(&stubAuthService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/me", nil), rec)
	c.Set("user", &domain.User{Name: "alice", Email: "a@example.com", Roles: []string{domain.RoleAdmin}})

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	data := envelopeOf(t, rec)["data"].(map[string]any)
	roles := data["roles"].([]any)
	if data["name"] != "alice" || len(roles) != 2 || roles[0] != domain.RoleAdmin || roles[1] != domain.RoleUser {
		t.Fatalf("unexpected data: %+v", data)
	}

	anonymous := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/me", nil), httptest.NewRecorder())
	if err := handler.Me(anonymous); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

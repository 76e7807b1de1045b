package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
)

type stubAuthRepo struct {
	users  map[uint]*domain.User
	tokens map[string]*domain.APIToken
	nextID uint
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[uint]*domain.User), tokens: make(map[string]*domain.APIToken)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) CreateUser(_ context.Context, user *domain.User, token *domain.APIToken) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = cloneUser(user)
	if token != nil {
		token.UserID = user.ID
		clone := *token
		r.tokens[token.Token] = &clone
	}
	return nil
}

func (r *stubAuthRepo) FindUserByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFound("User", id)
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubAuthRepo) ReplaceToken(_ context.Context, token *domain.APIToken) ([]string, error) {
	var revoked []string
	for value, t := range r.tokens {
		if t.UserID == token.UserID {
			revoked = append(revoked, value)
			delete(r.tokens, value)
		}
	}
	clone := *token
	r.tokens[token.Token] = &clone
	return revoked, nil
}

func (r *stubAuthRepo) FindToken(_ context.Context, value string) (*domain.APIToken, error) {
	t, ok := r.tokens[value]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

type stubTokenCache struct {
	entries map[string]uint
	deleted []string
}

func newStubTokenCache() *stubTokenCache {
	return &stubTokenCache{entries: make(map[string]uint)}
}

func (c *stubTokenCache) Get(_ context.Context, token string) (uint, bool, error) {
	id, ok := c.entries[token]
	return id, ok, nil
}

func (c *stubTokenCache) Set(_ context.Context, token string, userID uint, _ time.Duration) error {
	c.entries[token] = userID
	return nil
}

func (c *stubTokenCache) Delete(_ context.Context, tokens ...string) error {
	for _, t := range tokens {
		delete(c.entries, t)
		c.deleted = append(c.deleted, t)
	}
	return nil
}

// failingEvictCache keeps entries it was asked to drop, as a cache does when
// the backing store is unreachable during eviction.
type failingEvictCache struct {
	*stubTokenCache
}

func (c failingEvictCache) Delete(context.Context, ...string) error {
	return errors.New("connection refused")
}

var discardLogger = zerolog.Nop()

func alice() form.UserPayload {
	return form.UserPayload{Name: "Alice", Email: "alice@example.com", Password: "pass123"}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	cache := newStubTokenCache()
	svc := NewAuthService(repo, cache, time.Hour, discardLogger)

	user, token, err := svc.Register(context.Background(), alice())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 || token.UserID != user.ID {
		t.Fatalf("ids not assigned: user=%d token.user=%d", user.ID, token.UserID)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(token.Token) != 32 {
		t.Fatalf("expected 32 char token, got %q", token.Token)
	}
	if cache.entries[token.Token] != user.ID {
		t.Fatalf("token not cached")
	}
	if user.HasRole(domain.RoleAdmin) || !user.HasRole(domain.RoleUser) {
		t.Fatalf("unexpected roles: %v", user.EffectiveRoles())
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), nil, time.Hour, discardLogger)

	_, _, err := svc.Register(context.Background(), form.UserPayload{Email: "x"})
	var ve *form.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"name", "email", "password"} {
		if ve.Tree.Children[field] == nil {
			t.Fatalf("expected %s error, got %+v", field, ve.Tree)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), nil, time.Hour, discardLogger)

	if _, _, err := svc.Register(context.Background(), alice()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, err := svc.Register(context.Background(), alice())
	var ve *form.ValidationError
	if !errors.As(err, &ve) || ve.Tree.Children["email"].Errors[0] != form.MsgAlreadyUsed {
		t.Fatalf("expected email already used, got %v", err)
	}
}

func TestAuthService_Login_RotatesToken(t *testing.T) {
	repo := newStubAuthRepo()
	cache := newStubTokenCache()
	svc := NewAuthService(repo, cache, time.Hour, discardLogger)

	_, first, err := svc.Register(context.Background(), alice())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, second, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Name != "Alice" || second.Token == first.Token {
		t.Fatalf("unexpected login result: %+v %+v", user, second)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != first.Token {
		t.Fatalf("old token not evicted: %v", cache.deleted)
	}

	if _, err := svc.Authenticate(context.Background(), first.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("old token must be rejected, got %v", err)
	}
	got, err := svc.Authenticate(context.Background(), second.Token)
	if err != nil || got.Email != "alice@example.com" {
		t.Fatalf("new token must authenticate: %+v %v", got, err)
	}
}

func TestAuthService_Authenticate_StaleCacheEntryRejected(t *testing.T) {
	repo := newStubAuthRepo()
	cache := failingEvictCache{newStubTokenCache()}
	svc := NewAuthService(repo, cache, time.Hour, discardLogger)

	_, first, err := svc.Register(context.Background(), alice())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "pass123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, ok := cache.entries[first.Token]; !ok {
		t.Fatal("expected the revoked token to linger in the cache")
	}

	if _, err := svc.Authenticate(context.Background(), first.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("revoked token must be rejected despite the cache entry, got %v", err)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), nil, time.Hour, discardLogger)
	_, _, _ = svc.Register(context.Background(), alice())

	cases := map[string][2]string{
		"wrong password": {"alice@example.com", "badpass"},
		"unknown email":  {"ghost@example.com", "pass123"},
		"empty":          {"", ""},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := svc.Login(context.Background(), creds[0], creds[1]); err != domain.ErrInvalidCredentials {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Authenticate_Expired(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, nil, time.Hour, discardLogger)

	_, token, err := svc.Register(context.Background(), alice())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }
	if _, err := svc.Authenticate(context.Background(), token.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestAuthService_Authenticate_Unknown(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), newStubTokenCache(), time.Hour, discardLogger)

	for _, value := range []string{"", "deadbeef"} {
		if _, err := svc.Authenticate(context.Background(), value); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for %q, got %v", value, err)
		}
	}
}

func TestAuthService_CreateUser_Admin(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, nil, time.Hour, discardLogger)

	user, err := svc.CreateUser(context.Background(), alice(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if !user.HasRole(domain.RoleAdmin) {
		t.Fatalf("expected admin role, got %v", user.Roles)
	}
	if len(repo.tokens) != 0 {
		t.Fatalf("CreateUser must not issue a token")
	}
}

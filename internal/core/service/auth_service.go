package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// AuthService implements registration, login and bearer token resolution.
// Each user holds at most one token; issuing a new one revokes the old.
type AuthService struct {
	repo     ports.AuthRepository
	cache    ports.TokenCache
	tokenTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(repo ports.AuthRepository, cache ports.TokenCache, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:     repo,
		cache:    cache,
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Register(ctx context.Context, payload form.UserPayload) (*domain.User, *domain.APIToken, error) {
	user, err := s.newUser(payload)
	if err != nil {
		return nil, nil, err
	}

	token := s.newToken(0)
	if err := s.repo.CreateUser(ctx, &user, token); err != nil {
		return nil, nil, uniqueViolation(err, "email")
	}

	s.logger.Info().Uint("user_id", user.ID).Str("email", user.Email).Msg("user registered")
	s.cacheToken(ctx, token)
	return &user, token, nil
}

// CreateUser stores a user with the given roles and no token.
func (s *AuthService) CreateUser(ctx context.Context, payload form.UserPayload, roles ...string) (*domain.User, error) {
	user, err := s.newUser(payload)
	if err != nil {
		return nil, err
	}
	user.Roles = append(user.Roles, roles...)

	if err := s.repo.CreateUser(ctx, &user, nil); err != nil {
		return nil, uniqueViolation(err, "email")
	}
	s.logger.Info().Uint("user_id", user.ID).Strs("roles", user.Roles).Msg("user created")
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.APIToken, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	token := s.newToken(user.ID)
	revoked, err := s.repo.ReplaceToken(ctx, token)
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}
	if len(revoked) > 0 && s.cache != nil {
		if err := s.cache.Delete(ctx, revoked...); err != nil {
			s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("revoked tokens not evicted from cache")
		}
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user logged in")
	s.cacheToken(ctx, token)
	return user, token, nil
}

func (s *AuthService) Authenticate(ctx context.Context, value string) (*domain.User, error) {
	if value == "" {
		return nil, domain.ErrUnauthorized
	}

	var (
		cachedID uint
		cached   bool
	)
	if s.cache != nil {
		id, found, err := s.cache.Get(ctx, value)
		if err != nil {
			s.logger.Warn().Err(err).Msg("token cache lookup failed")
		}
		cachedID, cached = id, err == nil && found
	}

	// The api_token row is authoritative. A cache entry that outlived its
	// row, for instance because eviction failed on login, must not
	// authenticate.
	token, err := s.repo.FindToken(ctx, value)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if cached {
				s.evict(ctx, value)
			}
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if token.Expired(s.now()) {
		if cached {
			s.evict(ctx, value)
		}
		return nil, domain.ErrUnauthorized
	}

	user, err := s.repo.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if cached && cachedID == token.UserID {
		return user, nil
	}
	s.cacheToken(ctx, token)
	return user, nil
}

func (s *AuthService) newUser(payload form.UserPayload) (domain.User, error) {
	user, err := form.SubmitUser(payload)
	if err != nil {
		return domain.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return user, nil
}

// newToken returns an opaque 32 hex character token valid for tokenTTL.
func (s *AuthService) newToken(userID uint) *domain.APIToken {
	return &domain.APIToken{
		UserID:    userID,
		Token:     strings.ReplaceAll(uuid.NewString(), "-", ""),
		ExpiresAt: s.now().Add(s.tokenTTL),
	}
}

func (s *AuthService) evict(ctx context.Context, value string) {
	if err := s.cache.Delete(ctx, value); err != nil {
		s.logger.Warn().Err(err).Msg("stale token not evicted from cache")
	}
}

func (s *AuthService) cacheToken(ctx context.Context, token *domain.APIToken) {
	if s.cache == nil {
		return
	}
	ttl := token.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, token.Token, token.UserID, ttl); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", token.UserID).Msg("token not cached")
	}
}

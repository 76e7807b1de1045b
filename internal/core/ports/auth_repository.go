package ports

import (
	"context"
	"time"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// AuthRepository persists users and their single active API token.
type AuthRepository interface {
	FindUserByID(ctx context.Context, id uint) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// CreateUser inserts user and, when token is non-nil, its first token in
	// the same transaction. IDs are written back into both values.
	// A taken email yields domain.ErrDuplicate.
	CreateUser(ctx context.Context, user *domain.User, token *domain.APIToken) error
	// ReplaceToken deletes every token of token.UserID, stores token and
	// returns the deleted token values.
	ReplaceToken(ctx context.Context, token *domain.APIToken) ([]string, error)
	FindToken(ctx context.Context, value string) (*domain.APIToken, error)
}

// TokenCache keeps token → user id lookups off the database.
type TokenCache interface {
	Get(ctx context.Context, token string) (userID uint, found bool, err error)
	Set(ctx context.Context, token string, userID uint, ttl time.Duration) error
	Delete(ctx context.Context, tokens ...string) error
}

package ports

import (
	"context"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
)

type AuthService interface {
	Register(ctx context.Context, payload form.UserPayload) (*domain.User, *domain.APIToken, error)
	Login(ctx context.Context, email, password string) (*domain.User, *domain.APIToken, error)
	// Authenticate resolves a bearer token to its user. Unknown or expired
	// tokens yield domain.ErrUnauthorized.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) FindUserByID(ctx context.Context, id uint) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, "User", id)
	}
	return toUser(m), nil
}

func (r *AuthRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
		}
		return nil, err
	}
	return toUser(m), nil
}

func (r *AuthRepository) CreateUser(ctx context.Context, user *domain.User, token *domain.APIToken) error {
	m := userModel{
		Name:     user.Name,
		Email:    user.Email,
		Password: user.PasswordHash,
		Roles:    user.Roles,
	}
	if m.Roles == nil {
		m.Roles = []string{}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return translate(err)
		}
		user.ID = m.ID
		user.CreatedAt = m.CreatedAt
		user.UpdatedAt = m.UpdatedAt

		if token == nil {
			return nil
		}
		tm := apiTokenModel{UserID: m.ID, Token: token.Token, ExpiresAt: token.ExpiresAt}
		if err := tx.Create(&tm).Error; err != nil {
			return fmt.Errorf("create token: %w", err)
		}
		token.ID = tm.ID
		token.UserID = m.ID
		return nil
	})
}

// ReplaceToken stores token as the only token of its user and returns the
// values it revoked. Concurrent logins of one user queue on the user row; the
// upsert on user_id covers drivers without row locks.
func (r *AuthRepository) ReplaceToken(ctx context.Context, token *domain.APIToken) ([]string, error) {
	var revoked []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner userModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&owner, token.UserID).Error; err != nil {
			return notFound(err, "User", token.UserID)
		}

		var old []apiTokenModel
		if err := tx.Where("user_id = ?", token.UserID).Find(&old).Error; err != nil {
			return fmt.Errorf("load tokens: %w", err)
		}
		if len(old) > 0 {
			if err := tx.Where("user_id = ?", token.UserID).Delete(&apiTokenModel{}).Error; err != nil {
				return fmt.Errorf("revoke tokens: %w", err)
			}
		}

		tm := apiTokenModel{UserID: token.UserID, Token: token.Token, ExpiresAt: token.ExpiresAt}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at"}),
		}).Create(&tm).Error
		if err != nil {
			return fmt.Errorf("create token: %w", err)
		}
		token.ID = tm.ID

		for _, o := range old {
			revoked = append(revoked, o.Token)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return revoked, nil
}

func (r *AuthRepository) FindToken(ctx context.Context, value string) (*domain.APIToken, error) {
	var m apiTokenModel
	if err := r.db.WithContext(ctx).Where("token = ?", value).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("token: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return toToken(m), nil
}

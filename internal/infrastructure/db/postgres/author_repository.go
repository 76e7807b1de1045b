package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

type AuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) List(ctx context.Context, offset int) ([]domain.Author, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&authorModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count authors: %w", err)
	}

	var rows []authorModel
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(ports.PageSize).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list authors: %w", err)
	}

	out := make([]domain.Author, 0, len(rows))
	for _, m := range rows {
		out = append(out, toAuthor(m))
	}
	return out, total, nil
}

func (r *AuthorRepository) FindByID(ctx context.Context, id uint) (*domain.Author, error) {
	var m authorModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, domain.EntityAuthor, id)
	}
	a := toAuthor(m)
	return &a, nil
}

func (r *AuthorRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []authorModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find authors: %w", err)
	}
	out := make([]domain.Author, 0, len(rows))
	for _, m := range rows {
		out = append(out, toAuthor(m))
	}
	return out, nil
}

func (r *AuthorRepository) Create(ctx context.Context, author *domain.Author) error {
	m := fromAuthor(author)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*author = toAuthor(m)
	return nil
}

func (r *AuthorRepository) Update(ctx context.Context, author *domain.Author) error {
	m := fromAuthor(author)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return translate(err)
	}
	*author = toAuthor(m)
	return nil
}

// Delete removes the author and its book links in one transaction. Linked
// books are kept.
func (r *AuthorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&bookAuthorModel{}).Error; err != nil {
			return fmt.Errorf("unlink author %d: %w", id, err)
		}
		res := tx.Delete(&authorModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFound(domain.EntityAuthor, id)
		}
		return nil
	})
}

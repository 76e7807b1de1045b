package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) List(ctx context.Context, offset int) ([]domain.Genre, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&genreModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count genres: %w", err)
	}

	var rows []genreModel
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(ports.PageSize).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list genres: %w", err)
	}

	out := make([]domain.Genre, 0, len(rows))
	for _, m := range rows {
		out = append(out, toGenre(m))
	}
	return out, total, nil
}

func (r *GenreRepository) FindByID(ctx context.Context, id uint) (*domain.Genre, error) {
	var m genreModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, domain.EntityGenre, id)
	}
	a := toGenre(m)
	return &a, nil
}

func (r *GenreRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []genreModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}
	out := make([]domain.Genre, 0, len(rows))
	for _, m := range rows {
		out = append(out, toGenre(m))
	}
	return out, nil
}

func (r *GenreRepository) Create(ctx context.Context, genre *domain.Genre) error {
	m := fromGenre(genre)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*genre = toGenre(m)
	return nil
}

func (r *GenreRepository) Update(ctx context.Context, genre *domain.Genre) error {
	m := fromGenre(genre)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return translate(err)
	}
	*genre = toGenre(m)
	return nil
}

// Delete removes the genre and its book links in one transaction. Linked
// books are kept.
func (r *GenreRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", id).Delete(&bookGenreModel{}).Error; err != nil {
			return fmt.Errorf("unlink genre %d: %w", id, err)
		}
		res := tx.Delete(&genreModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFound(domain.EntityGenre, id)
		}
		return nil
	})
}

package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// List returns one page of books matching filter, ordered by id, with their
// authors and genres preloaded, plus the unpaged number of matches.
func (r *BookRepository) List(ctx context.Context, filter ports.BookFilter, offset int) ([]domain.Book, int64, error) {
	scopes := []func(*gorm.DB) *gorm.DB{
		titleContains(filter.Title),
		linkedTo(r.db, &bookAuthorModel{}, "author_id", filter.AuthorID),
		linkedTo(r.db, &bookGenreModel{}, "genre_id", filter.GenreID),
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&bookModel{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	var rows []bookModel
	err := r.db.WithContext(ctx).
		Scopes(scopes...).
		Scopes(withRelations).
		Order("book.id ASC").
		Limit(ports.PageSize).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	out := make([]domain.Book, 0, len(rows))
	for _, m := range rows {
		out = append(out, toBook(m))
	}
	return out, total, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id uint) (*domain.Book, error) {
	var m bookModel
	if err := r.db.WithContext(ctx).Scopes(withRelations).First(&m, id).Error; err != nil {
		return nil, notFound(err, domain.EntityBook, id)
	}
	b := toBook(m)
	return &b, nil
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) error {
	m := fromBook(book)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&m).Error; err != nil {
			return translate(err)
		}
		return replaceLinks(tx, m.ID, book.AuthorIDs(), book.GenreIDs())
	})
	if err != nil {
		return err
	}
	book.ID = m.ID
	book.CreatedAt = m.CreatedAt
	book.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) error {
	m := fromBook(book)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&m).Error; err != nil {
			return translate(err)
		}
		return replaceLinks(tx, m.ID, book.AuthorIDs(), book.GenreIDs())
	})
	if err != nil {
		return err
	}
	book.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *BookRepository) UpdateImagePath(ctx context.Context, id uint, path string) error {
	res := r.db.WithContext(ctx).Model(&bookModel{ID: id}).Update("image_path", path)
	if res.Error != nil {
		return fmt.Errorf("update image path of book %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound(domain.EntityBook, id)
	}
	return nil
}

// Delete removes the book and its author/genre links in one transaction.
func (r *BookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replaceLinks(tx, id, nil, nil); err != nil {
			return err
		}
		res := tx.Delete(&bookModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFound(domain.EntityBook, id)
		}
		return nil
	})
}

// replaceLinks makes authorIDs and genreIDs the exact link sets of bookID.
func replaceLinks(tx *gorm.DB, bookID uint, authorIDs, genreIDs []uint) error {
	if err := tx.Where("book_id = ?", bookID).Delete(&bookAuthorModel{}).Error; err != nil {
		return fmt.Errorf("clear authors of book %d: %w", bookID, err)
	}
	if err := tx.Where("book_id = ?", bookID).Delete(&bookGenreModel{}).Error; err != nil {
		return fmt.Errorf("clear genres of book %d: %w", bookID, err)
	}

	if len(authorIDs) > 0 {
		links := make([]bookAuthorModel, 0, len(authorIDs))
		for _, id := range authorIDs {
			links = append(links, bookAuthorModel{BookID: bookID, AuthorID: id})
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("link authors of book %d: %w", bookID, err)
		}
	}
	if len(genreIDs) > 0 {
		links := make([]bookGenreModel, 0, len(genreIDs))
		for _, id := range genreIDs {
			links = append(links, bookGenreModel{BookID: bookID, GenreID: id})
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("link genres of book %d: %w", bookID, err)
		}
	}
	return nil
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Authors", func(db *gorm.DB) *gorm.DB { return db.Order("author.id ASC") }).
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genre.id ASC") })
}

func titleContains(title string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if title == "" {
			return db
		}
		return db.Where("book.title LIKE ?", "%"+title+"%")
	}
}

// linkedTo keeps books that have a join row with column = id. It filters
// through a subquery so that the preloaded relation lists stay complete.
func linkedTo(base *gorm.DB, join any, column string, id uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == 0 {
			return db
		}
		sub := base.Session(&gorm.Session{NewDB: true}).Model(join).Select("book_id").Where(column+" = ?", id)
		return db.Where("book.id IN (?)", sub)
	}
}

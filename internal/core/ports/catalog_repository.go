package ports

import (
	"context"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// PageSize is the fixed number of rows returned by every list query.
const PageSize = 50

// BookFilter narrows a book listing. Zero values disable a predicate;
// the enabled ones are ANDed.
type BookFilter struct {
	Title    string // substring match
	AuthorID uint
	GenreID  uint
}

// AuthorRepository persists authors. Create/Update yield domain.ErrDuplicate
// for a taken name; lookups yield *domain.NotFoundError.
type AuthorRepository interface {
	List(ctx context.Context, offset int) ([]domain.Author, int64, error)
	FindByID(ctx context.Context, id uint) (*domain.Author, error)
	// FindByIDs returns the authors that exist among ids, ordered by id.
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Author, error)
	Create(ctx context.Context, author *domain.Author) error
	Update(ctx context.Context, author *domain.Author) error
	// Delete removes the author and its book_author rows, never the books.
	Delete(ctx context.Context, id uint) error
}

// GenreRepository mirrors AuthorRepository for genres.
type GenreRepository interface {
	List(ctx context.Context, offset int) ([]domain.Genre, int64, error)
	FindByID(ctx context.Context, id uint) (*domain.Genre, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Genre, error)
	Create(ctx context.Context, genre *domain.Genre) error
	Update(ctx context.Context, genre *domain.Genre) error
	Delete(ctx context.Context, id uint) error
}

// BookRepository persists books together with their author/genre links.
// Loaded books always carry their Authors and Genres.
type BookRepository interface {
	// List returns one page (ordered by id ascending) and the total number
	// of books matching filter.
	List(ctx context.Context, filter BookFilter, offset int) ([]domain.Book, int64, error)
	FindByID(ctx context.Context, id uint) (*domain.Book, error)
	// Create and Update write the row and replace both link sets in one
	// transaction. A taken title yields domain.ErrDuplicate.
	Create(ctx context.Context, book *domain.Book) error
	Update(ctx context.Context, book *domain.Book) error
	UpdateImagePath(ctx context.Context, id uint, path string) error
	// Delete removes the book and its link rows in one transaction.
	Delete(ctx context.Context, id uint) error
}

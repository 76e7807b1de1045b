package ports

import (
	"context"
	"io"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
)

// Page is one slice of a listing plus the unpaged total.
type Page[T any] struct {
	Items  []T
	Total  int64
	Offset int
}

type AuthorService interface {
	List(ctx context.Context, offset int) (*Page[domain.Author], error)
	Get(ctx context.Context, id uint) (*domain.Author, error)
	Create(ctx context.Context, payload form.AuthorPayload) (*domain.Author, error)
	Update(ctx context.Context, author *domain.Author, payload form.AuthorPayload) (*domain.Author, error)
	Delete(ctx context.Context, author *domain.Author) error
}

type GenreService interface {
	List(ctx context.Context, offset int) (*Page[domain.Genre], error)
	Get(ctx context.Context, id uint) (*domain.Genre, error)
	Create(ctx context.Context, payload form.GenrePayload) (*domain.Genre, error)
	Update(ctx context.Context, genre *domain.Genre, payload form.GenrePayload) (*domain.Genre, error)
	Delete(ctx context.Context, genre *domain.Genre) error
}

// ImageUpload is a cover image received from a client. File is nil when the
// request carried no file.
type ImageUpload struct {
	File io.Reader
	Size int64
}

type BookService interface {
	List(ctx context.Context, filter BookFilter, offset int) (*Page[domain.Book], error)
	Get(ctx context.Context, id uint) (*domain.Book, error)
	Create(ctx context.Context, payload form.BookPayload) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book, payload form.BookPayload) (*domain.Book, error)
	Delete(ctx context.Context, book *domain.Book) error
	AttachImage(ctx context.Context, book *domain.Book, upload ImageUpload) (*domain.Book, error)
}

// ImageStore keeps uploaded cover files.
type ImageStore interface {
	// Save writes r under name and returns the public path of the file.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
}

// AuditLog records committed catalog mutations.
type AuditLog interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

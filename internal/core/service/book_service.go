package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

// sniffLen is how many leading bytes of an upload are used to detect its type.
const sniffLen = 512

type BookService struct {
	books         ports.BookRepository
	authors       ports.AuthorRepository
	genres        ports.GenreRepository
	images        ports.ImageStore
	maxImageBytes int64
	audit         auditor
	logger        zerolog.Logger
}

func NewBookService(
	books ports.BookRepository,
	authors ports.AuthorRepository,
	genres ports.GenreRepository,
	images ports.ImageStore,
	maxImageBytes int64,
	audit ports.AuditLog,
	logger zerolog.Logger,
) *BookService {
	return &BookService{
		books:         books,
		authors:       authors,
		genres:        genres,
		images:        images,
		maxImageBytes: maxImageBytes,
		audit:         auditor{log: audit, logger: logger},
		logger:        logger,
	}
}

func (s *BookService) List(ctx context.Context, filter ports.BookFilter, offset int) (*ports.Page[domain.Book], error) {
	offset = clampOffset(offset)
	items, total, err := s.books.List(ctx, filter, offset)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return &ports.Page[domain.Book]{Items: items, Total: total, Offset: offset}, nil
}

func (s *BookService) Get(ctx context.Context, id uint) (*domain.Book, error) {
	return s.books.FindByID(ctx, id)
}

func (s *BookService) Create(ctx context.Context, payload form.BookPayload) (*domain.Book, error) {
	authors, genres, err := s.resolve(ctx, payload)
	if err != nil {
		return nil, err
	}
	book, err := form.SubmitBook(domain.Book{}, payload, authors, genres)
	if err != nil {
		return nil, err
	}
	if err := s.books.Create(ctx, &book); err != nil {
		return nil, uniqueViolation(err, "title")
	}

	s.logger.Info().Uint("book_id", book.ID).Str("title", book.Title).Msg("book created")
	s.audit.record(ctx, domain.EntityBook, book.ID, domain.AuditCreated, book.Title)
	return &book, nil
}

func (s *BookService) Update(ctx context.Context, book *domain.Book, payload form.BookPayload) (*domain.Book, error) {
	authors, genres, err := s.resolve(ctx, payload)
	if err != nil {
		return nil, err
	}
	updated, err := form.SubmitBook(*book, payload, authors, genres)
	if err != nil {
		return nil, err
	}
	if err := s.books.Update(ctx, &updated); err != nil {
		return nil, uniqueViolation(err, "title")
	}

	s.logger.Info().Uint("book_id", updated.ID).Msg("book updated")
	s.audit.record(ctx, domain.EntityBook, updated.ID, domain.AuditUpdated, updated.Title)
	return &updated, nil
}

func (s *BookService) Delete(ctx context.Context, book *domain.Book) error {
	if err := s.books.Delete(ctx, book.ID); err != nil {
		return fmt.Errorf("delete book %d: %w", book.ID, err)
	}

	s.logger.Info().Uint("book_id", book.ID).Msg("book deleted")
	s.audit.record(ctx, domain.EntityBook, book.ID, domain.AuditDeleted, book.Title)
	return nil
}

// AttachImage validates and stores a cover image under a random name and
// points the book's image path at it. The stored file is removed again when
// the path cannot be persisted.
func (s *BookService) AttachImage(ctx context.Context, book *domain.Book, upload ports.ImageUpload) (*domain.Book, error) {
	var head []byte
	if upload.File != nil {
		buf := make([]byte, sniffLen)
		n, err := io.ReadFull(upload.File, buf)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		head = buf[:n]
	}

	ext, err := form.CheckImage(upload.File != nil, upload.Size, s.maxImageBytes, head)
	if err != nil {
		s.logger.Debug().Uint("book_id", book.ID).Err(err).Msg("image rejected")
		return nil, err
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	path, err := s.images.Save(ctx, name, io.MultiReader(bytes.NewReader(head), upload.File))
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	if err := s.books.UpdateImagePath(ctx, book.ID, path); err != nil {
		if rmErr := s.images.Remove(ctx, name); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("file", name).Msg("orphaned image not removed")
		}
		return nil, fmt.Errorf("update image path: %w", err)
	}

	updated := *book
	updated.ImagePath = &path

	s.logger.Info().Uint("book_id", book.ID).Str("image_path", path).Msg("book image updated")
	s.audit.record(ctx, domain.EntityBook, book.ID, domain.AuditImageUpdated, path)
	return &updated, nil
}

// resolve loads the authors and genres referenced by payload. Ids that do
// not exist are simply missing from the result; form.SubmitBook reports them.
func (s *BookService) resolve(ctx context.Context, payload form.BookPayload) ([]domain.Author, []domain.Genre, error) {
	var (
		authors []domain.Author
		genres  []domain.Genre
		err     error
	)
	if len(payload.Author) > 0 {
		if authors, err = s.authors.FindByIDs(ctx, dedupe(payload.Author)); err != nil {
			return nil, nil, fmt.Errorf("resolve authors: %w", err)
		}
	}
	if len(payload.Genre) > 0 {
		if genres, err = s.genres.FindByIDs(ctx, dedupe(payload.Genre)); err != nil {
			return nil, nil, fmt.Errorf("resolve genres: %w", err)
		}
	}
	return authors, genres, nil
}

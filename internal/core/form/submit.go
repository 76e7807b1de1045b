package form

import (
	"strings"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// Submit functions apply a whole payload onto an entity value: every form
// field is replaced, absent fields count as empty. The input entity is never
// mutated; on failure it is returned unchanged with a *ValidationError.

func SubmitAuthor(author domain.Author, p AuthorPayload) (domain.Author, error) {
	if err := Validate(p).Err(); err != nil {
		return author, err
	}
	author.Name = p.Name
	return author, nil
}

func SubmitGenre(genre domain.Genre, p GenrePayload) (domain.Genre, error) {
	if err := Validate(p).Err(); err != nil {
		return genre, err
	}
	genre.Name = p.Name
	return genre, nil
}

// SubmitBook also checks that every id in p.Author/p.Genre resolved to one of
// the given authors/genres.
func SubmitBook(book domain.Book, p BookPayload, authors []domain.Author, genres []domain.Genre) (domain.Book, error) {
	tree := Validate(p)
	if !allResolved(p.Author, authors, func(a domain.Author) uint { return a.ID }) {
		tree.AddField("author", MsgInvalid)
	}
	if !allResolved(p.Genre, genres, func(g domain.Genre) uint { return g.ID }) {
		tree.AddField("genre", MsgInvalid)
	}
	if err := tree.Err(); err != nil {
		return book, err
	}

	book.Title = p.Title
	book.Description = p.Description
	book.Price = *p.Price
	book.Discount = *p.Discount
	book.Authors = append([]domain.Author(nil), authors...)
	book.Genres = append([]domain.Genre(nil), genres...)
	return book, nil
}

// SubmitUser builds a new user from a registration payload. The password is
// validated here but hashing is left to the caller.
func SubmitUser(p UserPayload) (domain.User, error) {
	p.Email = strings.TrimSpace(p.Email)
	if err := Validate(p).Err(); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		Name:  p.Name,
		Email: p.Email,
		Roles: []string{},
	}, nil
}

func allResolved[T any](ids []uint, found []T, id func(T) uint) bool {
	have := make(map[uint]struct{}, len(found))
	for _, f := range found {
		have[id(f)] = struct{}{}
	}
	for _, want := range ids {
		if _, ok := have[want]; !ok {
			return false
		}
	}
	return true
}

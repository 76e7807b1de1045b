package domain

import "time"

const EntityBook = "Book"

// Book is the catalog aggregate. Authors and Genres are the associated
// entities reachable through the book_author and book_genre join tables.
type Book struct {
	ID          uint
	Title       string
	Description string
	ImagePath   *string
	Price       float64
	Discount    float64
	Authors     []Author
	Genres      []Genre
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuthorIDs returns the ids of the associated authors in order.
func (b *Book) AuthorIDs() []uint {
	ids := make([]uint, len(b.Authors))
	for i, a := range b.Authors {
		ids[i] = a.ID
	}
	return ids
}

// GenreIDs returns the ids of the associated genres in order.
func (b *Book) GenreIDs() []uint {
	ids := make([]uint, len(b.Genres))
	for i, g := range b.Genres {
		ids[i] = g.ID
	}
	return ids
}

package domain

import "time"

const EntityGenre = "Genre"

// Genre classifies books. Name is unique across genres.
type Genre struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

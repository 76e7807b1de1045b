package domain

import "time"

const EntityAuthor = "Author"

// Author writes books. Name is unique across authors.
type Author struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package postgres

import (
	"time"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

type authorModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (authorModel) TableName() string { return "author" }

type genreModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (genreModel) TableName() string { return "genre" }

type bookModel struct {
	ID          uint          `gorm:"primaryKey"`
	Title       string        `gorm:"size:255;not null;uniqueIndex"`
	Description string        `gorm:"type:text;not null;default:''"`
	ImagePath   *string       `gorm:"size:255"`
	Price       float64       `gorm:"not null"`
	Discount    float64       `gorm:"not null"`
	Authors     []authorModel `gorm:"many2many:book_author;joinForeignKey:BookID;joinReferences:AuthorID;constraint:OnDelete:CASCADE"`
	Genres      []genreModel  `gorm:"many2many:book_genre;joinForeignKey:BookID;joinReferences:GenreID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (bookModel) TableName() string { return "book" }

type bookAuthorModel struct {
	BookID   uint `gorm:"primaryKey"`
	AuthorID uint `gorm:"primaryKey"`
}

func (bookAuthorModel) TableName() string { return "book_author" }

type bookGenreModel struct {
	BookID  uint `gorm:"primaryKey"`
	GenreID uint `gorm:"primaryKey"`
}

func (bookGenreModel) TableName() string { return "book_genre" }

type userModel struct {
	ID        uint     `gorm:"primaryKey"`
	Name      string   `gorm:"size:255;not null"`
	Email     string   `gorm:"size:180;not null;uniqueIndex"`
	Password  string   `gorm:"size:255;not null"`
	Roles     []string `gorm:"serializer:json;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "user" }

type apiTokenModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex"`
	Token     string    `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (apiTokenModel) TableName() string { return "api_token" }

func toAuthor(m authorModel) domain.Author {
	return domain.Author{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func fromAuthor(a *domain.Author) authorModel {
	return authorModel{ID: a.ID, Name: a.Name, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}

func toGenre(m genreModel) domain.Genre {
	return domain.Genre{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func fromGenre(g *domain.Genre) genreModel {
	return genreModel{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt, UpdatedAt: g.UpdatedAt}
}

func toBook(m bookModel) domain.Book {
	b := domain.Book{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ImagePath:   m.ImagePath,
		Price:       m.Price,
		Discount:    m.Discount,
		Authors:     make([]domain.Author, 0, len(m.Authors)),
		Genres:      make([]domain.Genre, 0, len(m.Genres)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, a := range m.Authors {
		b.Authors = append(b.Authors, toAuthor(a))
	}
	for _, g := range m.Genres {
		b.Genres = append(b.Genres, toGenre(g))
	}
	return b
}

func fromBook(b *domain.Book) bookModel {
	return bookModel{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		ImagePath:   b.ImagePath,
		Price:       b.Price,
		Discount:    b.Discount,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toUser(m userModel) *domain.User {
	roles := m.Roles
	if roles == nil {
		roles = []string{}
	}
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.Password,
		Roles:        roles,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toToken(m apiTokenModel) *domain.APIToken {
	return &domain.APIToken{ID: m.ID, UserID: m.UserID, Token: m.Token, ExpiresAt: m.ExpiresAt}
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// HeaderTotalCount carries the unpaged size of a listing.
const HeaderTotalCount = "X-Total-Count"

// --- Envelope ---

type successResponse struct {
	Status  string  `json:"status"`
	Message message `json:"message"`
}

type message struct {
	Text string `json:"text,omitempty"`
	Data any    `json:"data"`
}

func success(c echo.Context, text string, data any) error {
	return c.JSON(http.StatusOK, successResponse{
		Status:  "success",
		Message: message{Text: text, Data: data},
	})
}

func setTotal(c echo.Context, total int64) {
	c.Response().Header().Set(HeaderTotalCount, strconv.FormatInt(total, 10))
}

// --- Projections ---

type namedView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type nameSnapshot struct {
	Name string `json:"name"`
}

type bookView struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Discount    float64     `json:"discount"`
	ImagePath   *string     `json:"imagePath"`
	Author      []namedView `json:"author"`
	Genre       []namedView `json:"genre"`
}

// bookFields is echoed by book create and update.
type bookFields struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
}

type bookSnapshot struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
}

type bookImageView struct {
	bookFields
	ImagePath *string `json:"image_path"`
}

func toAuthorView(a domain.Author) namedView { return namedView{ID: a.ID, Name: a.Name} }
func toGenreView(g domain.Genre) namedView   { return namedView{ID: g.ID, Name: g.Name} }

func toBookView(b domain.Book) bookView {
	v := bookView{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price,
		Discount:    b.Discount,
		ImagePath:   b.ImagePath,
		Author:      make([]namedView, 0, len(b.Authors)),
		Genre:       make([]namedView, 0, len(b.Genres)),
	}
	for _, a := range b.Authors {
		v.Author = append(v.Author, toAuthorView(a))
	}
	for _, g := range b.Genres {
		v.Genre = append(v.Genre, toGenreView(g))
	}
	return v
}

func toBookViews(books []domain.Book) []bookView {
	out := make([]bookView, 0, len(books))
	for _, b := range books {
		out = append(out, toBookView(b))
	}
	return out
}

func toBookFields(b *domain.Book) bookFields {
	return bookFields{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price,
		Discount:    b.Discount,
	}
}

func toBookSnapshot(b *domain.Book) bookSnapshot {
	return bookSnapshot{
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price,
		Discount:    b.Discount,
	}
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/api/metrics"
	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

// GenreHandler handles HTTP requests for genres.
type GenreHandler struct {
	service ports.GenreService
	books   ports.BookService
}

func NewGenreHandler(service ports.GenreService, books ports.BookService) *GenreHandler {
	return &GenreHandler{service: service, books: books}
}

// List returns one page of genres.
//
// @Summary      List genres
// @Tags         genres
// @Produce      json
// @Param        offset  query     int  false  "Number of genres to skip"
// @Success      200     {object}  successResponse{message=message{data=[]namedView}}
// @Failure      400     {object}  map[string]any
// @Router       /api/genres [get]
func (h *GenreHandler) List(c echo.Context) error {
	offset, err := bindOffset(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), offset)
	if err != nil {
		return err
	}

	views := make([]namedView, 0, len(page.Items))
	for _, a := range page.Items {
		views = append(views, toGenreView(a))
	}
	setTotal(c, page.Total)
	return success(c, "", views)
}

// Get returns a single genre.
//
// @Summary      Show genre
// @Tags         genres
// @Produce      json
// @Param        id   path      int  true  "Genre id"
// @Success      200  {object}  successResponse{message=message{data=namedView}}
// @Failure      404  {object}  map[string]any
// @Router       /api/genres/{id} [get]
func (h *GenreHandler) Get(c echo.Context) error {
	genre, err := ctxEntity[domain.Genre](c, GenreKey)
	if err != nil {
		return err
	}
	return success(c, "", toGenreView(*genre))
}

// Books returns one page of the genre's books.
//
// @Summary      List books of a genre
// @Tags         genres
// @Produce      json
// @Param        id      path      int  true   "Genre id"
// @Param        offset  query     int  false  "Number of books to skip"
// @Success      200     {object}  successResponse{message=message{data=[]bookView}}
// @Failure      404     {object}  map[string]any
// @Router       /api/genres/{id}/books [get]
func (h *GenreHandler) Books(c echo.Context) error {
	genre, err := ctxEntity[domain.Genre](c, GenreKey)
	if err != nil {
		return err
	}
	offset, err := bindOffset(c)
	if err != nil {
		return err
	}

	page, err := h.books.List(c.Request().Context(), ports.BookFilter{GenreID: genre.ID}, offset)
	if err != nil {
		return err
	}
	setTotal(c, page.Total)
	return success(c, "", toBookViews(page.Items))
}

// Create adds a genre.
//
// @Summary      Create genre
// @Tags         genres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      form.GenrePayload  true  "Genre"
// @Success      200   {object}  successResponse{message=message{data=namedView}}
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/genres [post]
func (h *GenreHandler) Create(c echo.Context) error {
	var payload form.GenrePayload
	if err := decodeJSON(c, &payload); err != nil {
		return err
	}

	genre, err := h.service.Create(c.Request().Context(), payload)
	if err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("genre", string(domain.AuditCreated)).Inc()
	return success(c, "Genre was successfully added.", toGenreView(*genre))
}

// Update replaces a genre.
//
// @Summary      Update genre
// @Tags         genres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Genre id"
// @Param        body  body      form.GenrePayload  true  "Genre"
// @Success      200   {object}  successResponse{message=message{data=namedView}}
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/genres/{id} [put]
func (h *GenreHandler) Update(c echo.Context) error {
	genre, err := ctxEntity[domain.Genre](c, GenreKey)
	if err != nil {
		return err
	}
	var payload form.GenrePayload
	if err := decodeJSON(c, &payload); err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), genre, payload)
	if err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("genre", string(domain.AuditUpdated)).Inc()
	return success(c, "Genre was successfully updated.", toGenreView(*updated))
}

// Delete removes a genre. Its books are kept.
//
// @Summary      Delete genre
// @Tags         genres
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Genre id"
// @Success      200  {object}  successResponse{message=message{data=nameSnapshot}}
// @Failure      404  {object}  map[string]any
// @Router       /api/genres/{id} [delete]
func (h *GenreHandler) Delete(c echo.Context) error {
	genre, err := ctxEntity[domain.Genre](c, GenreKey)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), genre); err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("genre", string(domain.AuditDeleted)).Inc()
	return success(c, "Genre was successfully deleted.", nameSnapshot{Name: genre.Name})
}

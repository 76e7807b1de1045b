package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/api/metrics"
	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

// AuthorHandler handles HTTP requests for authors.
type AuthorHandler struct {
	service ports.AuthorService
	books   ports.BookService
}

func NewAuthorHandler(service ports.AuthorService, books ports.BookService) *AuthorHandler {
	return &AuthorHandler{service: service, books: books}
}

// List returns one page of authors.
//
// @Summary      List authors
// @Tags         authors
// @Produce      json
// @Param        offset  query     int  false  "Number of authors to skip"
// @Success      200     {object}  successResponse{message=message{data=[]namedView}}
// @Failure      400     {object}  map[string]any
// @Router       /api/authors [get]
func (h *AuthorHandler) List(c echo.Context) error {
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
		views = append(views, toAuthorView(a))
	}
	setTotal(c, page.Total)
	return success(c, "", views)
}

// Get returns a single author.
//
// @Summary      Show author
// @Tags         authors
// @Produce      json
// @Param        id   path      int  true  "Author id"
// @Success      200  {object}  successResponse{message=message{data=namedView}}
// @Failure      404  {object}  map[string]any
// @Router       /api/authors/{id} [get]
func (h *AuthorHandler) Get(c echo.Context) error {
	author, err := ctxEntity[domain.Author](c, AuthorKey)
	if err != nil {
		return err
	}
	return success(c, "", toAuthorView(*author))
}

// Books returns one page of the author's books.
//
// @Summary      List books of an author
// @Tags         authors
// @Produce      json
// @Param        id      path      int  true   "Author id"
// @Param        offset  query     int  false  "Number of books to skip"
// @Success      200     {object}  successResponse{message=message{data=[]bookView}}
// @Failure      404     {object}  map[string]any
// @Router       /api/authors/{id}/books [get]
func (h *AuthorHandler) Books(c echo.Context) error {
	author, err := ctxEntity[domain.Author](c, AuthorKey)
	if err != nil {
		return err
	}
	offset, err := bindOffset(c)
	if err != nil {
		return err
	}

	page, err := h.books.List(c.Request().Context(), ports.BookFilter{AuthorID: author.ID}, offset)
	if err != nil {
		return err
	}
	setTotal(c, page.Total)
	return success(c, "", toBookViews(page.Items))
}

// Create adds an author.
//
// @Summary      Create author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      form.AuthorPayload  true  "Author"
// @Success      200   {object}  successResponse{message=message{data=namedView}}
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/authors [post]
func (h *AuthorHandler) Create(c echo.Context) error {
	var payload form.AuthorPayload
	if err := decodeJSON(c, &payload); err != nil {
		return err
	}

	author, err := h.service.Create(c.Request().Context(), payload)
	if err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("author", string(domain.AuditCreated)).Inc()
	return success(c, "Author was successfully added.", toAuthorView(*author))
}

// Update replaces an author.
//
// @Summary      Update author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Author id"
// @Param        body  body      form.AuthorPayload  true  "Author"
// @Success      200   {object}  successResponse{message=message{data=namedView}}
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/authors/{id} [put]
func (h *AuthorHandler) Update(c echo.Context) error {
	author, err := ctxEntity[domain.Author](c, AuthorKey)
	if err != nil {
		return err
	}
	var payload form.AuthorPayload
	if err := decodeJSON(c, &payload); err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), author, payload)
	if err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("author", string(domain.AuditUpdated)).Inc()
	return success(c, "Author was successfully updated.", toAuthorView(*updated))
}

// Delete removes an author. Its books are kept.
//
// @Summary      Delete author
// @Tags         authors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Author id"
// @Success      200  {object}  successResponse{message=message{data=nameSnapshot}}
// @Failure      404  {object}  map[string]any
// @Router       /api/authors/{id} [delete]
func (h *AuthorHandler) Delete(c echo.Context) error {
	author, err := ctxEntity[domain.Author](c, AuthorKey)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), author); err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("author", string(domain.AuditDeleted)).Inc()
	return success(c, "Author was successfully deleted.", nameSnapshot{Name: author.Name})
}

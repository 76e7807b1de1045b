package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-api/internal/api/metrics"
	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

// BookHandler handles HTTP requests for books and their cover images.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// List returns one page of books, optionally filtered.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        offset     query     int     false  "Number of books to skip"
// @Param        title      query     string  false  "Title substring"
// @Param        author_id  query     int     false  "Only books of this author"
// @Param        genre_id   query     int     false  "Only books of this genre"
// @Success      200        {object}  successResponse{message=message{data=[]bookView}}
// @Header       200        {integer}  X-Total-Count  "Number of matching books"
// @Failure      400        {object}  map[string]any
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	filter, offset, err := bindBookQuery(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), filter, offset)
	if err != nil {
		return err
	}
	setTotal(c, page.Total)
	return success(c, "", toBookViews(page.Items))
}

// Get returns a single book with its authors and genres.
//
// @Summary      Show book
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book id"
// @Success      200  {object}  successResponse{message=message{data=bookView}}
// @Failure      404  {object}  map[string]any
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := ctxEntity[domain.Book](c, BookKey)
	if err != nil {
		return err
	}
	return success(c, "", toBookView(*book))
}

// Create adds a book.
//
// @Summary      Create book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      form.BookPayload  true  "Book"
// @Success      200   {object}  successResponse{message=message{data=bookFields}}
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var payload form.BookPayload
	if err := decodeJSON(c, &payload); err != nil {
		return err
	}

	book, err := h.service.Create(c.Request().Context(), payload)
	if err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("book", string(domain.AuditCreated)).Inc()
	return success(c, "Book was successfully added.", toBookFields(book))
}

// Update replaces every field and both relation sets of a book.
//
// @Summary      Update book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Book id"
// @Param        body  body      form.BookPayload  true  "Book"
// @Success      200   {object}  successResponse{message=message{data=bookFields}}
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	book, err := ctxEntity[domain.Book](c, BookKey)
	if err != nil {
		return err
	}
	var payload form.BookPayload
	if err := decodeJSON(c, &payload); err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), book, payload)
	if err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("book", string(domain.AuditUpdated)).Inc()
	return success(c, "Book was successfully updated.", toBookFields(updated))
}

// Delete removes a book. Its authors and genres are kept.
//
// @Summary      Delete book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Book id"
// @Success      200  {object}  successResponse{message=message{data=bookSnapshot}}
// @Failure      404  {object}  map[string]any
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	book, err := ctxEntity[domain.Book](c, BookKey)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), book); err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("book", string(domain.AuditDeleted)).Inc()
	return success(c, "Book was successfully deleted.", toBookSnapshot(book))
}

// UploadImage stores the multipart "image" file as the book cover.
//
// @Summary      Upload book cover
// @Tags         books
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int   true  "Book id"
// @Param        image  formData  file  true  "Cover image (jpeg, png, gif or webp)"
// @Success      200    {object}  successResponse{message=message{data=bookImageView}}
// @Failure      400    {object}  map[string]any
// @Failure      404    {object}  map[string]any
// @Router       /api/books/{id}/image [post]
func (h *BookHandler) UploadImage(c echo.Context) error {
	book, err := ctxEntity[domain.Book](c, BookKey)
	if err != nil {
		return err
	}

	var upload ports.ImageUpload
	// A request that is not multipart or lacks the field counts as no upload.
	if fh, err := c.FormFile(form.ImageField); err == nil {
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		upload = ports.ImageUpload{File: f, Size: fh.Size}
	}

	updated, err := h.service.AttachImage(c.Request().Context(), book, upload)
	metrics.ImageUploadsTotal.WithLabelValues(uploadResult(err)).Inc()
	if err != nil {
		return err
	}

	metrics.CatalogMutationsTotal.WithLabelValues("book", string(domain.AuditImageUpdated)).Inc()
	return success(c, "Book image was successfully updated.", bookImageView{
		bookFields: toBookFields(updated),
		ImagePath:  updated.ImagePath,
	})
}

func uploadResult(err error) string {
	if err != nil {
		return "rejected"
	}
	return "stored"
}

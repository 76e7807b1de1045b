package form

// AuthorPayload is the body of POST/PUT /api/authors.
type AuthorPayload struct {
	Name string `json:"name" validate:"required,max=255"`
}

// GenrePayload is the body of POST/PUT /api/genres.
type GenrePayload struct {
	Name string `json:"name" validate:"required,max=255"`
}

// BookPayload is the body of POST/PUT /api/books. Price and Discount are
// pointers so an absent number fails "required" instead of binding to zero.
type BookPayload struct {
	Title       string   `json:"title"       validate:"required,max=255"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Discount    *float64 `json:"discount"    validate:"required,gte=0,lte=100"`
	Author      []uint   `json:"author"`
	Genre       []uint   `json:"genre"`
}

// UserPayload is the body of POST /api/register.
type UserPayload struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=180"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

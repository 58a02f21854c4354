package reportengine

import "time"

// Category is the fixed set of topics a report can be filed under.
type Category string

const (
	CategoryKebabs      Category = "Kebabs"
	CategoryBurgers     Category = "Burgers"
	CategoryRestaurants Category = "Restaurants"
)

// DefaultCategory is used for any submitted category outside the known set.
const DefaultCategory = CategoryRestaurants

// Categories lists the recognized categories in display order.
var Categories = []Category{CategoryKebabs, CategoryBurgers, CategoryRestaurants}

// NormalizeCategory returns s as a Category when it is recognized, and
// DefaultCategory otherwise. Unknown values are coerced, never rejected.
func NormalizeCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return DefaultCategory
}

// Status is the publication state of a report.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// ReportCollection is the document collection reports are inserted into.
const ReportCollection = "blogreport"

// BlogReport is the document stored for every created report.
type BlogReport struct {
	Title     string    `json:"title" bson:"title" validate:"required,min=3,max=140"`
	Category  Category  `json:"category" bson:"category" validate:"required,oneof=Kebabs Burgers Restaurants"`
	ImageURL  *string   `json:"image_url" bson:"image_url" validate:"omitempty,uri"`
	Excerpt   *string   `json:"excerpt" bson:"excerpt" validate:"omitempty,max=280"`
	Content   string    `json:"content" bson:"content" validate:"required,min=10"`
	Author    string    `json:"author" bson:"author"`
	Status    Status    `json:"status" bson:"status" validate:"oneof=draft published"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// User is an authenticated caller. Only the configured admin can ever be one.
type User struct {
	Username string `json:"username"`
}

// LoginRequest is the JSON body of POST /auth/login. Both fields must be
// present; empty strings are allowed and simply fail authentication.
type LoginRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// TokenResponse is returned on a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateReportResponse is returned after a report is stored.
type CreateReportResponse struct {
	ID       string  `json:"id"`
	ImageURL *string `json:"image_url"`
}

type messageResponse struct {
	Message string `json:"message"`
}

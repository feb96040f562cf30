// AngelaMos | 2026
// dto.go

package course

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price encodes a course price as a bare JSON number with two decimals.
type Price decimal.Decimal

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(p).StringFixed(priceScale)), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*p = Price(d)
	return nil
}

type CreateCourseRequest struct {
	Title        string           `json:"title"         validate:"required,max=255"`
	Description  string           `json:"description"   validate:"required"`
	InstructorID int64            `json:"instructor_id" validate:"required,gt=0"`
	CategoryID   int64            `json:"category_id"   validate:"required,gt=0"`
	Price        *decimal.Decimal `json:"price"         validate:"required"`
}

// UpdateCourseRequest changes only the fields present in the body.
type UpdateCourseRequest struct {
	Title       *string          `json:"title,omitempty"       validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	CategoryID  *int64           `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

type CourseResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	InstructorID int64     `json:"instructor_id"`
	CategoryID   int64     `json:"category_id"`
	Price        Price     `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func ToCourseResponse(c *Course) CourseResponse {
	return CourseResponse{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		InstructorID: c.InstructorID,
		CategoryID:   c.CategoryID,
		Price:        Price(c.Price),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func ToCourseResponseList(courses []Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, ToCourseResponse(&c))
	}
	return responses
}

// AngelaMos | 2026
// entity.go

package course

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

const priceScale = 2

// maxPrice is the largest value a NUMERIC(12,2) column holds.
var maxPrice = decimal.RequireFromString("9999999999.99")

type Course struct {
	ID           int64           `db:"id"`
	Title        string          `db:"title"         validate:"required,max=255"`
	Description  string          `db:"description"   validate:"required"`
	InstructorID int64           `db:"instructor_id" validate:"gt=0"`
	CategoryID   int64           `db:"category_id"   validate:"gt=0"`
	Price        decimal.Decimal `db:"price"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (c *Course) Validate() error {
	verr := core.CollectValidation(c)

	switch {
	case c.Price.IsNegative():
		verr.Add("price", "must not be negative")
	case c.Price.GreaterThan(maxPrice):
		verr.Add("price", "must be at most "+maxPrice.StringFixed(priceScale))
	case !c.Price.Equal(c.Price.Round(priceScale)):
		verr.Add("price", "must have at most 2 decimal places")
	}

	return verr.OrNil()
}

// canPublish reports whether actor may publish a course taught by
// instructorID. Tutors publish only their own courses.
func canPublish(actor core.Actor, instructorID int64) bool {
	if actor.IsSuperAdmin() {
		return true
	}
	return actor.IsTutor() && actor.Owns(instructorID)
}

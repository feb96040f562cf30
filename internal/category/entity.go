// AngelaMos | 2026
// entity.go

package category

import (
	"time"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type Category struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"        validate:"required,max=200"`
	Description string    `db:"description" validate:"required"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (c *Category) Validate() error {
	return core.ValidateStruct(c)
}

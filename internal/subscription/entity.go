// AngelaMos | 2026
// entity.go

package subscription

import (
	"time"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type Subscription struct {
	ID        int64      `db:"id"`
	StudentID int64      `db:"student_id" validate:"gt=0"`
	TutorID   int64      `db:"tutor_id"   validate:"gt=0"`
	StartDate time.Time  `db:"start_date" validate:"required"`
	EndDate   *time.Time `db:"end_date"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

func (s *Subscription) Validate() error {
	verr := core.CollectValidation(s)

	if s.EndDate != nil && !s.EndDate.After(s.StartDate) {
		verr.Add("end_date", "must be after start_date")
	}

	return verr.OrNil()
}

// Active reports whether the subscription has not been ended.
func (s *Subscription) Active() bool {
	return s.EndDate == nil
}

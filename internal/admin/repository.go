// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

// MarketplaceCounts is a row count per table, with users split by role.
type MarketplaceCounts struct {
	Students      int64 `db:"students"      json:"students"`
	Tutors        int64 `db:"tutors"        json:"tutors"`
	SuperAdmins   int64 `db:"super_admins"  json:"super_admins"`
	Categories    int64 `db:"categories"    json:"categories"`
	Courses       int64 `db:"courses"       json:"courses"`
	Enrollments   int64 `db:"enrollments"   json:"enrollments"`
	Completed     int64 `db:"completed"     json:"completed_enrollments"`
	Reviews       int64 `db:"reviews"       json:"reviews"`
	Quizzes       int64 `db:"quizzes"       json:"quizzes"`
	Submissions   int64 `db:"submissions"   json:"submissions"`
	Graded        int64 `db:"graded"        json:"graded_submissions"`
	Subscriptions int64 `db:"subscriptions" json:"active_subscriptions"`
}

type StatsRepository interface {
	Counts(ctx context.Context) (*MarketplaceCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) StatsRepository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context) (*MarketplaceCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = $1)              AS students,
			(SELECT COUNT(*) FROM users WHERE role = $2)              AS tutors,
			(SELECT COUNT(*) FROM users WHERE role = $3)              AS super_admins,
			(SELECT COUNT(*) FROM categories)                         AS categories,
			(SELECT COUNT(*) FROM courses)                            AS courses,
			(SELECT COUNT(*) FROM enrollments)                        AS enrollments,
			(SELECT COUNT(*) FROM enrollments WHERE completed)        AS completed,
			(SELECT COUNT(*) FROM reviews)                            AS reviews,
			(SELECT COUNT(*) FROM quizzes)                            AS quizzes,
			(SELECT COUNT(*) FROM submissions)                        AS submissions,
			(SELECT COUNT(*) FROM submissions WHERE grade IS NOT NULL) AS graded,
			(SELECT COUNT(*) FROM subscriptions WHERE end_date IS NULL) AS subscriptions`

	var c MarketplaceCounts
	err := r.db.GetContext(ctx, &c, query,
		core.RoleStudent, core.RoleTutor, core.RoleSuperAdmin)
	if err != nil {
		return nil, fmt.Errorf("count marketplace rows: %w", err)
	}

	return &c, nil
}

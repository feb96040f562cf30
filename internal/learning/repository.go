// AngelaMos | 2026
// repository.go

package learning

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type Repository interface {
	CreateEnrollment(ctx context.Context, e *Enrollment) error
	GetEnrollment(ctx context.Context, id int64) (*Enrollment, error)
	CompleteEnrollment(ctx context.Context, e *Enrollment) error
	ListEnrollmentsByCourse(ctx context.Context, courseID int64) ([]Enrollment, error)
	ListEnrollmentsByStudent(ctx context.Context, studentID int64) ([]Enrollment, error)

	CreateReview(ctx context.Context, r *Review) error
	ListReviews(ctx context.Context, courseID int64) ([]Review, error)

	CreateContent(ctx context.Context, c *Content) error
	GetContent(ctx context.Context, id int64) (*Content, error)
	ListContent(ctx context.Context, courseID int64) ([]Content, error)
	DeleteContent(ctx context.Context, id int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const enrollmentColumns = `id, student_id, course_id, enrolled_at, completed,
	       completion_date, created_at, updated_at`

func (r *repository) CreateEnrollment(ctx context.Context, e *Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING ` + enrollmentColumns

	if err := r.db.GetContext(ctx, e, query, e.StudentID, e.CourseID); err != nil {
		return core.WriteError("create enrollment", err)
	}

	return nil
}

func (r *repository) GetEnrollment(ctx context.Context, id int64) (*Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`

	var e Enrollment
	err := r.db.GetContext(ctx, &e, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get enrollment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}

	return &e, nil
}

func (r *repository) CompleteEnrollment(ctx context.Context, e *Enrollment) error {
	query := `
		UPDATE enrollments
		SET completed = $2, completion_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &e.UpdatedAt, query, e.ID, e.Completed, e.CompletionDate)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("complete enrollment: %w", core.ErrNotFound)
	}
	if err != nil {
		return core.WriteError("complete enrollment", err)
	}

	return nil
}

func (r *repository) ListEnrollmentsByCourse(
	ctx context.Context,
	courseID int64,
) ([]Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + `
		FROM enrollments WHERE course_id = $1 ORDER BY id`

	enrollments := []Enrollment{}
	if err := r.db.SelectContext(ctx, &enrollments, query, courseID); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	return enrollments, nil
}

func (r *repository) ListEnrollmentsByStudent(
	ctx context.Context,
	studentID int64,
) ([]Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + `
		FROM enrollments WHERE student_id = $1 ORDER BY id`

	enrollments := []Enrollment{}
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	return enrollments, nil
}

func (r *repository) CreateReview(ctx context.Context, rv *Review) error {
	query := `
		INSERT INTO reviews (content, rating, course_id, student_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		rv.Content,
		rv.Rating,
		rv.CourseID,
		rv.StudentID,
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return core.WriteError("create review", err)
	}

	return nil
}

func (r *repository) ListReviews(ctx context.Context, courseID int64) ([]Review, error) {
	query := `
		SELECT id, content, rating, course_id, student_id, created_at, updated_at
		FROM reviews
		WHERE course_id = $1
		ORDER BY id`

	reviews := []Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, courseID); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}

func (r *repository) CreateContent(ctx context.Context, c *Content) error {
	query := `
		INSERT INTO content (title, description, content_type, file_path, text_content, course_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.Title,
		c.Description,
		c.ContentType,
		c.FilePath,
		c.TextContent,
		c.CourseID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return core.WriteError("create content", err)
	}

	return nil
}

const contentColumns = `id, title, description, content_type, file_path, text_content,
	       course_id, created_at, updated_at`

func (r *repository) GetContent(ctx context.Context, id int64) (*Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE id = $1`

	var c Content
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get content: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}

	return &c, nil
}

func (r *repository) ListContent(ctx context.Context, courseID int64) ([]Content, error) {
	query := `SELECT ` + contentColumns + `
		FROM content WHERE course_id = $1 ORDER BY id`

	items := []Content{}
	if err := r.db.SelectContext(ctx, &items, query, courseID); err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	return items, nil
}

func (r *repository) DeleteContent(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete content: %w", core.ErrNotFound)
	}

	return nil
}

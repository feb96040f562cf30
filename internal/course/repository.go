// AngelaMos | 2026
// repository.go

package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Course) error
	GetByID(ctx context.Context, id int64) (*Course, error)
	List(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, c *Course) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const courseColumns = `id, title, description, instructor_id, category_id, price,
	       created_at, updated_at`

func (r *repository) Create(ctx context.Context, c *Course) error {
	query := `
		INSERT INTO courses (title, description, instructor_id, category_id, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.Title,
		c.Description,
		c.InstructorID,
		c.CategoryID,
		c.Price,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return core.WriteError("create course", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	var c Course
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get course: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY id`

	courses := []Course{}
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	return courses, nil
}

func (r *repository) Update(ctx context.Context, c *Course) error {
	query := `
		UPDATE courses
		SET title = $2, description = $3, category_id = $4, price = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &c.UpdatedAt, query,
		c.ID,
		c.Title,
		c.Description,
		c.CategoryID,
		c.Price,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update course: %w", core.ErrNotFound)
	}
	if err != nil {
		return core.WriteError("update course", err)
	}

	return nil
}

// Delete removes the course. Enrollments, reviews, content and quizzes
// are removed by ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete course: %w", core.ErrNotFound)
	}

	return nil
}

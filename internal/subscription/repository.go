// AngelaMos | 2026
// repository.go

package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type Repository interface {
	Create(ctx context.Context, s *Subscription) error
	GetByID(ctx context.Context, id int64) (*Subscription, error)
	End(ctx context.Context, s *Subscription) error
	ListByStudent(ctx context.Context, studentID int64) ([]Subscription, error)
	ListByTutor(ctx context.Context, tutorID int64) ([]Subscription, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const columns = `id, student_id, tutor_id, start_date, end_date, created_at, updated_at`

func (r *repository) Create(ctx context.Context, s *Subscription) error {
	query := `
		INSERT INTO subscriptions (student_id, tutor_id, start_date)
		VALUES ($1, $2, $3)
		RETURNING ` + columns

	if err := r.db.GetContext(ctx, s, query, s.StudentID, s.TutorID, s.StartDate); err != nil {
		return core.WriteError("create subscription", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Subscription, error) {
	query := `SELECT ` + columns + ` FROM subscriptions WHERE id = $1`

	var s Subscription
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	return &s, nil
}

func (r *repository) End(ctx context.Context, s *Subscription) error {
	query := `
		UPDATE subscriptions
		SET end_date = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &s.UpdatedAt, query, s.ID, s.EndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("end subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return core.WriteError("end subscription", err)
	}

	return nil
}

func (r *repository) ListByStudent(ctx context.Context, studentID int64) ([]Subscription, error) {
	return r.list(ctx, "list student subscriptions", `student_id = $1`, studentID)
}

func (r *repository) ListByTutor(ctx context.Context, tutorID int64) ([]Subscription, error) {
	return r.list(ctx, "list tutor subscriptions", `tutor_id = $1`, tutorID)
}

func (r *repository) list(ctx context.Context, op, where string, id int64) ([]Subscription, error) {
	query := `SELECT ` + columns + ` FROM subscriptions WHERE ` + where + ` ORDER BY id`

	var subs []Subscription
	if err := r.db.SelectContext(ctx, &subs, query, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return subs, nil
}

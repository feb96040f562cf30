// AngelaMos | 2026
// repository.go

package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type Repository interface {
	// WithTx runs fn against a repository bound to one transaction.
	WithTx(ctx context.Context, fn func(Repository) error) error

	CreateQuiz(ctx context.Context, q *Quiz) error
	GetQuiz(ctx context.Context, id int64) (*Quiz, error)
	DeleteQuiz(ctx context.Context, id int64) error

	CreateQuestion(ctx context.Context, q *Question) error
	GetQuestion(ctx context.Context, id int64) (*Question, error)
	ListQuestions(ctx context.Context, quizID int64) ([]Question, error)
	DeleteQuestion(ctx context.Context, id int64) error

	CreateAnswer(ctx context.Context, a *Answer) error
	ListAnswers(ctx context.Context, quizID int64) ([]Answer, error)

	CreateSubmission(ctx context.Context, s *Submission) error
	GetSubmission(ctx context.Context, id int64) (*Submission, error)
	SetSubmissionGrade(ctx context.Context, id int64, score float64) error

	CreateGrade(ctx context.Context, g *Grade) error
	GetGrade(ctx context.Context, submissionID int64) (*Grade, error)
}

type repository struct {
	db   core.DBTX
	conn *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, conn: db}
}

func (r *repository) WithTx(ctx context.Context, fn func(Repository) error) error {
	if r.conn == nil {
		return fn(r)
	}

	return core.InTx(ctx, r.conn, func(tx *sqlx.Tx) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) CreateQuiz(ctx context.Context, q *Quiz) error {
	query := `
		INSERT INTO quizzes (course_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, q.CourseID, q.Title, q.Description).
		Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return core.WriteError("create quiz", err)
	}

	return nil
}

func (r *repository) GetQuiz(ctx context.Context, id int64) (*Quiz, error) {
	query := `
		SELECT id, course_id, title, description, created_at, updated_at
		FROM quizzes
		WHERE id = $1`

	var q Quiz
	err := r.db.GetContext(ctx, &q, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get quiz: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	return &q, nil
}

// DeleteQuiz removes the quiz with its questions, answers and
// submissions through ON DELETE CASCADE.
func (r *repository) DeleteQuiz(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "quiz", `DELETE FROM quizzes WHERE id = $1`, id)
}

func (r *repository) CreateQuestion(ctx context.Context, q *Question) error {
	query := `
		INSERT INTO questions (quiz_id, question_text)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, q.QuizID, q.QuestionText).
		Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return core.WriteError("create question", err)
	}

	return nil
}

func (r *repository) GetQuestion(ctx context.Context, id int64) (*Question, error) {
	query := `
		SELECT id, quiz_id, question_text, created_at, updated_at
		FROM questions
		WHERE id = $1`

	var q Question
	err := r.db.GetContext(ctx, &q, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get question: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	return &q, nil
}

func (r *repository) ListQuestions(ctx context.Context, quizID int64) ([]Question, error) {
	query := `
		SELECT id, quiz_id, question_text, created_at, updated_at
		FROM questions
		WHERE quiz_id = $1
		ORDER BY id`

	questions := []Question{}
	if err := r.db.SelectContext(ctx, &questions, query, quizID); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return questions, nil
}

func (r *repository) DeleteQuestion(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "question", `DELETE FROM questions WHERE id = $1`, id)
}

func (r *repository) CreateAnswer(ctx context.Context, a *Answer) error {
	query := `
		INSERT INTO answers (question_id, answer_text, is_correct)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, a.QuestionID, a.AnswerText, a.IsCorrect).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return core.WriteError("create answer", err)
	}

	return nil
}

func (r *repository) ListAnswers(ctx context.Context, quizID int64) ([]Answer, error) {
	query := `
		SELECT a.id, a.question_id, a.answer_text, a.is_correct,
		       a.created_at, a.updated_at
		FROM answers a
		JOIN questions q ON q.id = a.question_id
		WHERE q.quiz_id = $1
		ORDER BY a.id`

	answers := []Answer{}
	if err := r.db.SelectContext(ctx, &answers, query, quizID); err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	return answers, nil
}

func (r *repository) CreateSubmission(ctx context.Context, s *Submission) error {
	query := `
		INSERT INTO submissions (quiz_id, student_id)
		VALUES ($1, $2)
		RETURNING id, submission_date, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, s.QuizID, s.StudentID).
		Scan(&s.ID, &s.SubmissionDate, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return core.WriteError("create submission", err)
	}

	return nil
}

func (r *repository) GetSubmission(ctx context.Context, id int64) (*Submission, error) {
	query := `
		SELECT id, quiz_id, student_id, submission_date, grade, created_at, updated_at
		FROM submissions
		WHERE id = $1`

	var s Submission
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get submission: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}

	return &s, nil
}

func (r *repository) SetSubmissionGrade(ctx context.Context, id int64, score float64) error {
	query := `
		UPDATE submissions
		SET grade = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, score)
	if err != nil {
		return core.WriteError("set submission grade", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set submission grade: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set submission grade: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CreateGrade(ctx context.Context, g *Grade) error {
	query := `
		INSERT INTO grades (submission_id, score, feedback)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, g.SubmissionID, g.Score, g.Feedback).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return core.WriteError("create grade", err)
	}

	return nil
}

func (r *repository) GetGrade(ctx context.Context, submissionID int64) (*Grade, error) {
	query := `
		SELECT id, submission_id, score, feedback, created_at, updated_at
		FROM grades
		WHERE submission_id = $1`

	var g Grade
	err := r.db.GetContext(ctx, &g, query, submissionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get grade: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get grade: %w", err)
	}

	return &g, nil
}

func (r *repository) deleteByID(ctx context.Context, resource, query string, id int64) error {
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", resource, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", resource, err)
	}

	if rows == 0 {
		return fmt.Errorf("delete %s: %w", resource, core.ErrNotFound)
	}

	return nil
}

// AngelaMos | 2026
// entity.go

package quiz

import (
	"time"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type Quiz struct {
	ID          int64     `db:"id"`
	CourseID    int64     `db:"course_id"   validate:"gt=0"`
	Title       string    `db:"title"       validate:"required,max=255"`
	Description string    `db:"description" validate:"required"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (q *Quiz) Validate() error {
	return core.ValidateStruct(q)
}

type Question struct {
	ID           int64     `db:"id"`
	QuizID       int64     `db:"quiz_id"`
	QuestionText string    `db:"question_text" validate:"required"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (q *Question) Validate() error {
	return core.ValidateStruct(q)
}

type Answer struct {
	ID         int64     `db:"id"`
	QuestionID int64     `db:"question_id"`
	AnswerText string    `db:"answer_text" validate:"required"`
	IsCorrect  bool      `db:"is_correct"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (a *Answer) Validate() error {
	return core.ValidateStruct(a)
}

type Submission struct {
	ID             int64     `db:"id"`
	QuizID         int64     `db:"quiz_id"    validate:"gt=0"`
	StudentID      int64     `db:"student_id" validate:"gt=0"`
	SubmissionDate time.Time `db:"submission_date"`
	Grade          *float64  `db:"grade"      validate:"omitempty,gte=0"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (s *Submission) Validate() error {
	return core.ValidateStruct(s)
}

type Grade struct {
	ID           int64     `db:"id"`
	SubmissionID int64     `db:"submission_id" validate:"gt=0"`
	Score        float64   `db:"score"         validate:"gte=0"`
	Feedback     *string   `db:"feedback"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (g *Grade) Validate() error {
	return core.ValidateStruct(g)
}

// QuestionDetail is a question with its answer options.
type QuestionDetail struct {
	Question
	Answers []Answer
}

// Detail is a quiz with its questions and their answers.
type Detail struct {
	Quiz
	Questions []QuestionDetail
}

// AngelaMos | 2026
// dto.go

package quiz

import (
	"time"
)

type AnswerInput struct {
	AnswerText string `json:"answer_text" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
}

type QuestionInput struct {
	QuestionText string        `json:"question_text" validate:"required"`
	Answers      []AnswerInput `json:"answers"       validate:"dive"`
}

type CreateQuizRequest struct {
	CourseID    int64           `json:"-"           validate:"gt=0"`
	Title       string          `json:"title"       validate:"required,max=255"`
	Description string          `json:"description" validate:"required"`
	Questions   []QuestionInput `json:"questions"   validate:"dive"`
}

type GradeRequest struct {
	Score    float64 `json:"score"              validate:"gte=0"`
	Feedback *string `json:"feedback,omitempty"`
}

type AnswerResponse struct {
	ID         int64  `json:"id"`
	AnswerText string `json:"answer_text"`
	IsCorrect  *bool  `json:"is_correct,omitempty"`
}

type QuestionResponse struct {
	ID           int64            `json:"id"`
	QuestionText string           `json:"question_text"`
	Answers      []AnswerResponse `json:"answers"`
}

type QuizResponse struct {
	ID          int64              `json:"id"`
	CourseID    int64              `json:"course_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Questions   []QuestionResponse `json:"questions"`
	CreatedAt   time.Time          `json:"created_at"`
}

type SubmissionResponse struct {
	ID             int64     `json:"id"`
	QuizID         int64     `json:"quiz_id"`
	StudentID      int64     `json:"student_id"`
	SubmissionDate time.Time `json:"submission_date"`
	Grade          *float64  `json:"grade"`
}

type GradeResponse struct {
	ID           int64     `json:"id"`
	SubmissionID int64     `json:"submission_id"`
	Score        float64   `json:"score"`
	Feedback     *string   `json:"feedback"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToQuizResponse renders d. Answer correctness is included only when
// reveal is set, so students can take the quiz from the same payload.
func ToQuizResponse(d *Detail, reveal bool) QuizResponse {
	questions := make([]QuestionResponse, 0, len(d.Questions))
	for _, q := range d.Questions {
		answers := make([]AnswerResponse, 0, len(q.Answers))
		for _, a := range q.Answers {
			ar := AnswerResponse{ID: a.ID, AnswerText: a.AnswerText}
			if reveal {
				correct := a.IsCorrect
				ar.IsCorrect = &correct
			}
			answers = append(answers, ar)
		}
		questions = append(questions, QuestionResponse{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Answers:      answers,
		})
	}

	return QuizResponse{
		ID:          d.ID,
		CourseID:    d.CourseID,
		Title:       d.Title,
		Description: d.Description,
		Questions:   questions,
		CreatedAt:   d.CreatedAt,
	}
}

func ToSubmissionResponse(s *Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:             s.ID,
		QuizID:         s.QuizID,
		StudentID:      s.StudentID,
		SubmissionDate: s.SubmissionDate,
		Grade:          s.Grade,
	}
}

func ToGradeResponse(g *Grade) GradeResponse {
	return GradeResponse{
		ID:           g.ID,
		SubmissionID: g.SubmissionID,
		Score:        g.Score,
		Feedback:     g.Feedback,
		CreatedAt:    g.CreatedAt,
	}
}

// AngelaMos | 2026
// service.go

package quiz

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

// CourseLookup resolves the tutor who owns a course.
type CourseLookup interface {
	InstructorOf(ctx context.Context, courseID int64) (int64, error)
}

type Service struct {
	repo    Repository
	courses CourseLookup
}

func NewService(repo Repository, courses CourseLookup) *Service {
	return &Service{
		repo:    repo,
		courses: courses,
	}
}

// CreateQuiz stores the quiz, its questions and their answers in one
// transaction.
func (s *Service) CreateQuiz(
	ctx context.Context,
	actor core.Actor,
	req CreateQuizRequest,
) (_ *Detail, err error) {
	ctx, span := core.StartSpan(ctx, "quiz.Create",
		attribute.Int64("course.id", req.CourseID),
		attribute.Int("quiz.questions", len(req.Questions)),
	)
	defer func() { core.EndSpan(span, err) }()

	if err := s.AuthorizeCourse(ctx, actor, req.CourseID); err != nil {
		return nil, err
	}

	detail, err := buildDetail(req)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(repo Repository) error {
		if err := repo.CreateQuiz(ctx, &detail.Quiz); err != nil {
			return err
		}

		for i := range detail.Questions {
			q := &detail.Questions[i]
			q.QuizID = detail.ID
			if err := repo.CreateQuestion(ctx, &q.Question); err != nil {
				return err
			}

			for j := range q.Answers {
				q.Answers[j].QuestionID = q.ID
				if err := repo.CreateAnswer(ctx, &q.Answers[j]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

func buildDetail(req CreateQuizRequest) (*Detail, error) {
	detail := &Detail{
		Quiz: Quiz{
			CourseID:    req.CourseID,
			Title:       req.Title,
			Description: req.Description,
		},
		Questions: make([]QuestionDetail, 0, len(req.Questions)),
	}

	verr := core.CollectValidation(&detail.Quiz)

	for i, in := range req.Questions {
		q := QuestionDetail{Question: Question{QuestionText: in.QuestionText}}
		if err := q.Question.Validate(); err != nil {
			verr.Add(fmt.Sprintf("questions[%d].question_text", i), "is required")
		}

		hasCorrect := false
		for j, a := range in.Answers {
			answer := Answer{AnswerText: a.AnswerText, IsCorrect: a.IsCorrect}
			if err := answer.Validate(); err != nil {
				verr.Add(fmt.Sprintf("questions[%d].answers[%d].answer_text", i, j), "is required")
			}
			hasCorrect = hasCorrect || a.IsCorrect
			q.Answers = append(q.Answers, answer)
		}
		if len(in.Answers) > 0 && !hasCorrect {
			verr.Add(fmt.Sprintf("questions[%d].answers", i), "must mark at least one answer correct")
		}

		detail.Questions = append(detail.Questions, q)
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return detail, nil
}

// GetQuiz loads the quiz with every question and answer.
func (s *Service) GetQuiz(ctx context.Context, id int64) (*Detail, error) {
	q, err := s.repo.GetQuiz(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.ListQuestions(ctx, id)
	if err != nil {
		return nil, err
	}

	answers, err := s.repo.ListAnswers(ctx, id)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[int64][]Answer, len(questions))
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}

	detail := &Detail{Quiz: *q, Questions: make([]QuestionDetail, 0, len(questions))}
	for _, question := range questions {
		detail.Questions = append(detail.Questions, QuestionDetail{
			Question: question,
			Answers:  byQuestion[question.ID],
		})
	}

	return detail, nil
}

func (s *Service) DeleteQuiz(ctx context.Context, actor core.Actor, id int64) (err error) {
	ctx, span := core.StartSpan(ctx, "quiz.Delete",
		attribute.Int64("quiz.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	q, err := s.repo.GetQuiz(ctx, id)
	if err != nil {
		return err
	}

	if err := s.AuthorizeCourse(ctx, actor, q.CourseID); err != nil {
		return err
	}

	return s.repo.DeleteQuiz(ctx, id)
}

func (s *Service) DeleteQuestion(ctx context.Context, actor core.Actor, id int64) (err error) {
	ctx, span := core.StartSpan(ctx, "quiz.DeleteQuestion",
		attribute.Int64("question.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	question, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		return err
	}

	q, err := s.repo.GetQuiz(ctx, question.QuizID)
	if err != nil {
		return err
	}

	if err := s.AuthorizeCourse(ctx, actor, q.CourseID); err != nil {
		return err
	}

	return s.repo.DeleteQuestion(ctx, id)
}

// Submit records that studentID handed in quizID. Students submit for
// themselves.
func (s *Service) Submit(
	ctx context.Context,
	actor core.Actor,
	quizID, studentID int64,
) (_ *Submission, err error) {
	ctx, span := core.StartSpan(ctx, "quiz.Submit",
		attribute.Int64("quiz.id", quizID),
	)
	defer func() { core.EndSpan(span, err) }()

	if !actor.CanManage(studentID) {
		return nil, fmt.Errorf("submit quiz: %w", core.ErrForbidden)
	}

	sub := &Submission{QuizID: quizID, StudentID: studentID}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// GradeSubmission stores the grade and copies its score onto the
// submission in one transaction. A submission is graded once.
func (s *Service) GradeSubmission(
	ctx context.Context,
	actor core.Actor,
	submissionID int64,
	req GradeRequest,
) (_ *Grade, err error) {
	ctx, span := core.StartSpan(ctx, "quiz.Grade",
		attribute.Int64("submission.id", submissionID),
	)
	defer func() { core.EndSpan(span, err) }()

	sub, err := s.repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeQuiz(ctx, actor, sub.QuizID); err != nil {
		return nil, err
	}

	g := &Grade{SubmissionID: submissionID, Score: req.Score}
	if req.Feedback != nil {
		feedback := core.PlainText(*req.Feedback)
		g.Feedback = &feedback
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(repo Repository) error {
		if err := repo.CreateGrade(ctx, g); err != nil {
			return err
		}
		return repo.SetSubmissionGrade(ctx, submissionID, g.Score)
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

// GetGrade returns the grade of a submission to the student who made it
// or to the course tutor.
func (s *Service) GetGrade(
	ctx context.Context,
	actor core.Actor,
	submissionID int64,
) (*Grade, error) {
	sub, err := s.repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if !actor.CanManage(sub.StudentID) {
		if err := s.authorizeQuiz(ctx, actor, sub.QuizID); err != nil {
			return nil, err
		}
	}

	return s.repo.GetGrade(ctx, submissionID)
}

// AuthorizeCourse reports ErrForbidden unless actor teaches courseID or is
// a super admin.
func (s *Service) AuthorizeCourse(ctx context.Context, actor core.Actor, courseID int64) error {
	if actor.IsSuperAdmin() {
		return nil
	}

	instructorID, err := s.courses.InstructorOf(ctx, courseID)
	if err != nil {
		return err
	}

	if !actor.Owns(instructorID) {
		return fmt.Errorf("course %d: %w", courseID, core.ErrForbidden)
	}

	return nil
}

func (s *Service) authorizeQuiz(ctx context.Context, actor core.Actor, quizID int64) error {
	q, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	return s.AuthorizeCourse(ctx, actor, q.CourseID)
}

// AngelaMos | 2026
// helpers_test.go

package quiz

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

var errInjected = errors.New("injected failure")

// memRepo keeps rows in maps. WithTx snapshots every map and restores
// them when fn fails.
type memRepo struct {
	nextID      int64
	quizzes     map[int64]Quiz
	questions   map[int64]Question
	answers     map[int64]Answer
	submissions map[int64]Submission
	grades      map[int64]Grade

	failAnswer string
	failGrade  bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		quizzes:     map[int64]Quiz{},
		questions:   map[int64]Question{},
		answers:     map[int64]Answer{},
		submissions: map[int64]Submission{},
		grades:      map[int64]Grade{},
	}
}

func (m *memRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memRepo) WithTx(_ context.Context, fn func(Repository) error) error {
	quizzes := maps.Clone(m.quizzes)
	questions := maps.Clone(m.questions)
	answers := maps.Clone(m.answers)
	submissions := maps.Clone(m.submissions)
	grades := maps.Clone(m.grades)

	if err := fn(m); err != nil {
		m.quizzes, m.questions, m.answers = quizzes, questions, answers
		m.submissions, m.grades = submissions, grades
		return err
	}
	return nil
}

func (m *memRepo) CreateQuiz(_ context.Context, q *Quiz) error {
	q.ID = m.id()
	q.CreatedAt = time.Now()
	m.quizzes[q.ID] = *q
	return nil
}

func (m *memRepo) GetQuiz(_ context.Context, id int64) (*Quiz, error) {
	q, ok := m.quizzes[id]
	if !ok {
		return nil, fmt.Errorf("get quiz: %w", core.ErrNotFound)
	}
	return &q, nil
}

func (m *memRepo) DeleteQuiz(_ context.Context, id int64) error {
	if _, ok := m.quizzes[id]; !ok {
		return fmt.Errorf("delete quiz: %w", core.ErrNotFound)
	}
	delete(m.quizzes, id)
	for qid, q := range m.questions {
		if q.QuizID == id {
			m.dropQuestion(qid)
		}
	}
	for sid, s := range m.submissions {
		if s.QuizID == id {
			delete(m.submissions, sid)
		}
	}
	return nil
}

func (m *memRepo) CreateQuestion(_ context.Context, q *Question) error {
	if _, ok := m.quizzes[q.QuizID]; !ok {
		return fmt.Errorf("create question: %w", core.ErrInvalidReference)
	}
	q.ID = m.id()
	m.questions[q.ID] = *q
	return nil
}

func (m *memRepo) GetQuestion(_ context.Context, id int64) (*Question, error) {
	q, ok := m.questions[id]
	if !ok {
		return nil, fmt.Errorf("get question: %w", core.ErrNotFound)
	}
	return &q, nil
}

func (m *memRepo) ListQuestions(_ context.Context, quizID int64) ([]Question, error) {
	out := []Question{}
	for _, q := range m.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) DeleteQuestion(_ context.Context, id int64) error {
	if _, ok := m.questions[id]; !ok {
		return fmt.Errorf("delete question: %w", core.ErrNotFound)
	}
	m.dropQuestion(id)
	return nil
}

func (m *memRepo) dropQuestion(id int64) {
	delete(m.questions, id)
	for aid, a := range m.answers {
		if a.QuestionID == id {
			delete(m.answers, aid)
		}
	}
}

func (m *memRepo) CreateAnswer(_ context.Context, a *Answer) error {
	if m.failAnswer != "" && a.AnswerText == m.failAnswer {
		return errInjected
	}
	a.ID = m.id()
	m.answers[a.ID] = *a
	return nil
}

func (m *memRepo) ListAnswers(_ context.Context, quizID int64) ([]Answer, error) {
	out := []Answer{}
	for _, a := range m.answers {
		if q, ok := m.questions[a.QuestionID]; ok && q.QuizID == quizID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) CreateSubmission(_ context.Context, s *Submission) error {
	if _, ok := m.quizzes[s.QuizID]; !ok {
		return fmt.Errorf("create submission: %w", core.ErrInvalidReference)
	}
	s.ID = m.id()
	s.SubmissionDate = time.Now()
	m.submissions[s.ID] = *s
	return nil
}

func (m *memRepo) GetSubmission(_ context.Context, id int64) (*Submission, error) {
	s, ok := m.submissions[id]
	if !ok {
		return nil, fmt.Errorf("get submission: %w", core.ErrNotFound)
	}
	return &s, nil
}

func (m *memRepo) SetSubmissionGrade(_ context.Context, id int64, score float64) error {
	if m.failGrade {
		return errInjected
	}
	s, ok := m.submissions[id]
	if !ok {
		return fmt.Errorf("set submission grade: %w", core.ErrNotFound)
	}
	s.Grade = &score
	m.submissions[id] = s
	return nil
}

func (m *memRepo) CreateGrade(_ context.Context, g *Grade) error {
	for _, existing := range m.grades {
		if existing.SubmissionID == g.SubmissionID {
			return fmt.Errorf("create grade: %w", core.ErrDuplicateKey)
		}
	}
	g.ID = m.id()
	m.grades[g.ID] = *g
	return nil
}

func (m *memRepo) GetGrade(_ context.Context, submissionID int64) (*Grade, error) {
	for _, g := range m.grades {
		if g.SubmissionID == submissionID {
			return &g, nil
		}
	}
	return nil, fmt.Errorf("get grade: %w", core.ErrNotFound)
}

type courseOwners map[int64]int64

func (c courseOwners) InstructorOf(_ context.Context, courseID int64) (int64, error) {
	id, ok := c[courseID]
	if !ok {
		return 0, fmt.Errorf("get course: %w", core.ErrNotFound)
	}
	return id, nil
}

var (
	tutor   = core.Actor{UserID: 10, Role: core.RoleTutor}
	student = core.Actor{UserID: 20, Role: core.RoleStudent}
	admin   = core.Actor{UserID: 1, Role: core.RoleSuperAdmin}
)

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, courseOwners{100: tutor.UserID}), repo
}

func sampleQuiz() CreateQuizRequest {
	return CreateQuizRequest{
		CourseID:    100,
		Title:       "Arithmetic",
		Description: "Warm up",
		Questions: []QuestionInput{
			{
				QuestionText: "2 + 2?",
				Answers: []AnswerInput{
					{AnswerText: "4", IsCorrect: true},
					{AnswerText: "5"},
				},
			},
			{
				QuestionText: "3 * 3?",
				Answers: []AnswerInput{
					{AnswerText: "9", IsCorrect: true},
					{AnswerText: "6"},
				},
			},
		},
	}
}

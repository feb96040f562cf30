// AngelaMos | 2026
// service_test.go

package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

func TestCreateQuizStoresTree(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.CreateQuiz(ctx, tutor, sampleQuiz())
	require.NoError(t, err)
	require.Len(t, created.Questions, 2)

	got, err := svc.GetQuiz(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arithmetic", got.Title)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "2 + 2?", got.Questions[0].QuestionText)
	require.Len(t, got.Questions[0].Answers, 2)
	assert.True(t, got.Questions[0].Answers[0].IsCorrect)

	assert.Len(t, repo.answers, 4)
}

func TestCreateQuizRollsBack(t *testing.T) {
	svc, repo := newTestService()
	repo.failAnswer = "6"

	_, err := svc.CreateQuiz(context.Background(), tutor, sampleQuiz())
	require.ErrorIs(t, err, errInjected)

	assert.Empty(t, repo.quizzes)
	assert.Empty(t, repo.questions)
	assert.Empty(t, repo.answers)
}

func TestCreateQuizValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := sampleQuiz()
	req.Questions[1].Answers[0].IsCorrect = false
	req.Questions[0].QuestionText = ""

	_, err := svc.CreateQuiz(ctx, tutor, req)
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("questions[0].question_text"))
	assert.True(t, verr.Has("questions[1].answers"))

	_, err = svc.CreateQuiz(ctx, student, sampleQuiz())
	assert.ErrorIs(t, err, core.ErrForbidden)

	other := sampleQuiz()
	other.CourseID = 404
	_, err = svc.CreateQuiz(ctx, tutor, other)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSubmitAndGrade(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	q, err := svc.CreateQuiz(ctx, tutor, sampleQuiz())
	require.NoError(t, err)

	_, err = svc.Submit(ctx, student, q.ID, 99)
	assert.ErrorIs(t, err, core.ErrForbidden)

	sub, err := svc.Submit(ctx, student, q.ID, student.UserID)
	require.NoError(t, err)
	assert.Nil(t, sub.Grade)

	_, err = svc.GradeSubmission(ctx, student, sub.ID, GradeRequest{Score: 100})
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.GradeSubmission(ctx, tutor, sub.ID, GradeRequest{Score: -1})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	feedback := "<b>Well done</b>"
	g, err := svc.GradeSubmission(ctx, tutor, sub.ID, GradeRequest{Score: 2, Feedback: &feedback})
	require.NoError(t, err)
	require.NotNil(t, g.Feedback)
	assert.Equal(t, "Well done", *g.Feedback)

	stored := repo.submissions[sub.ID]
	require.NotNil(t, stored.Grade)
	assert.InDelta(t, 2, *stored.Grade, 0)

	_, err = svc.GradeSubmission(ctx, tutor, sub.ID, GradeRequest{Score: 1})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	mine, err := svc.GetGrade(ctx, student, sub.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2, mine.Score, 0)

	_, err = svc.GetGrade(ctx, core.Actor{UserID: 21, Role: core.RoleStudent}, sub.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestGradeFeedbackKeepsSpecialCharacters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	q, err := svc.CreateQuiz(ctx, tutor, sampleQuiz())
	require.NoError(t, err)

	tests := []struct {
		name     string
		feedback string
		want     string
	}{
		{"ampersand and quotes", `Tom & Jerry said "5 > 3" it's great`, `Tom & Jerry said "5 > 3" it's great`},
		{"markup stripped", `<i>Close</i> & nearly there`, `Close & nearly there`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := svc.Submit(ctx, student, q.ID, student.UserID)
			require.NoError(t, err)

			feedback := tt.feedback
			g, err := svc.GradeSubmission(ctx, tutor, sub.ID, GradeRequest{Score: 1, Feedback: &feedback})
			require.NoError(t, err)
			require.NotNil(t, g.Feedback)
			assert.Equal(t, tt.want, *g.Feedback)
		})
	}
}

func TestGradeRollsBack(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	q, err := svc.CreateQuiz(ctx, tutor, sampleQuiz())
	require.NoError(t, err)
	sub, err := svc.Submit(ctx, student, q.ID, student.UserID)
	require.NoError(t, err)

	repo.failGrade = true
	_, err = svc.GradeSubmission(ctx, admin, sub.ID, GradeRequest{Score: 1})
	require.ErrorIs(t, err, errInjected)

	assert.Empty(t, repo.grades)
	assert.Nil(t, repo.submissions[sub.ID].Grade)
}

func TestDeleteQuizAndQuestion(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	q, err := svc.CreateQuiz(ctx, tutor, sampleQuiz())
	require.NoError(t, err)

	firstQuestion := q.Questions[0].ID
	assert.ErrorIs(t, svc.DeleteQuestion(ctx, student, firstQuestion), core.ErrForbidden)
	require.NoError(t, svc.DeleteQuestion(ctx, tutor, firstQuestion))
	assert.Len(t, repo.answers, 2)

	_, err = svc.Submit(ctx, student, q.ID, student.UserID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuiz(ctx, admin, q.ID))
	assert.Empty(t, repo.questions)
	assert.Empty(t, repo.answers)
	assert.Empty(t, repo.submissions)

	assert.ErrorIs(t, svc.DeleteQuiz(ctx, admin, q.ID), core.ErrNotFound)
}

// AngelaMos | 2026
// handler.go

package quiz

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/course-marketplace/internal/core"
	"github.com/carterperez-dev/course-marketplace/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/course/{id}/quizzes", h.CreateQuiz)
		r.Get("/quizzes/{id}", h.GetQuiz)
		r.Delete("/quizzes/{id}", h.DeleteQuiz)
		r.Delete("/questions/{id}", h.DeleteQuestion)

		r.Post("/quizzes/{id}/submissions", h.Submit)
		r.Post("/submissions/{id}/grade", h.Grade)
		r.Get("/submissions/{id}/grade", h.GetGrade)
	})
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	courseID, ok := parseID(w, r, "course")
	if !ok {
		return
	}

	var req CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	req.CourseID = courseID

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	detail, err := h.service.CreateQuiz(r.Context(), middleware.GetActor(r.Context()), req)
	if err != nil {
		core.ServiceError(w, "course", err)
		return
	}

	core.Created(w, ToQuizResponse(detail, true))
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "quiz")
	if !ok {
		return
	}

	detail, err := h.service.GetQuiz(r.Context(), id)
	if err != nil {
		core.ServiceError(w, "quiz", err)
		return
	}

	reveal := h.service.AuthorizeCourse(
		r.Context(),
		middleware.GetActor(r.Context()),
		detail.CourseID,
	) == nil

	core.OK(w, ToQuizResponse(detail, reveal))
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "quiz")
	if !ok {
		return
	}

	if err := h.service.DeleteQuiz(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		core.ServiceError(w, "quiz", err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "question")
	if !ok {
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		core.ServiceError(w, "question", err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	quizID, ok := parseID(w, r, "quiz")
	if !ok {
		return
	}

	actor := middleware.GetActor(r.Context())
	sub, err := h.service.Submit(r.Context(), actor, quizID, actor.UserID)
	if err != nil {
		core.ServiceError(w, "quiz", err)
		return
	}

	core.Created(w, ToSubmissionResponse(sub))
}

func (h *Handler) Grade(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := parseID(w, r, "submission")
	if !ok {
		return
	}

	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	g, err := h.service.GradeSubmission(r.Context(), middleware.GetActor(r.Context()), submissionID, req)
	if err != nil {
		core.ServiceError(w, "grade", err)
		return
	}

	core.Created(w, ToGradeResponse(g))
}

func (h *Handler) GetGrade(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := parseID(w, r, "submission")
	if !ok {
		return
	}

	g, err := h.service.GetGrade(r.Context(), middleware.GetActor(r.Context()), submissionID)
	if err != nil {
		core.ServiceError(w, "grade", err)
		return
	}

	core.OK(w, ToGradeResponse(g))
}

func parseID(w http.ResponseWriter, r *http.Request, resource string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid "+resource+" id")
		return 0, false
	}
	return id, true
}

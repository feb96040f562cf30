// AngelaMos | 2026
// handler.go

package learning

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
	r.Get("/course/{id}/reviews", h.ListReviews)
	r.Get("/course/{id}/content", h.ListContent)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/course/{id}/enroll", h.Enroll)
		r.Get("/course/{id}/enrollments", h.ListCourseEnrollments)
		r.Get("/enrollments", h.ListMyEnrollments)
		r.Post("/enrollments/{id}/complete", h.CompleteEnrollment)

		r.Post("/course/{id}/reviews", h.AddReview)

		r.Post("/course/{id}/content", h.AddContent)
		r.Delete("/content/{id}", h.DeleteContent)
	})
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	courseID, ok := parseID(w, r, "course")
	if !ok {
		return
	}

	var req EnrollRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
	}

	actor := middleware.GetActor(r.Context())
	req.CourseID = courseID
	if req.StudentID == 0 {
		req.StudentID = actor.UserID
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	e, err := h.service.Enroll(r.Context(), actor, req)
	if err != nil {
		core.ServiceError(w, "course", err)
		return
	}

	core.Created(w, ToEnrollmentResponse(e))
}

func (h *Handler) ListCourseEnrollments(w http.ResponseWriter, r *http.Request) {
	courseID, ok := parseID(w, r, "course")
	if !ok {
		return
	}

	enrollments, err := h.service.ListEnrollments(
		r.Context(),
		middleware.GetActor(r.Context()),
		courseID,
	)
	if err != nil {
		core.ServiceError(w, "course", err)
		return
	}

	core.OK(w, mapSlice(enrollments, ToEnrollmentResponse))
}

func (h *Handler) ListMyEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.service.ListStudentEnrollments(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, mapSlice(enrollments, ToEnrollmentResponse))
}

func (h *Handler) CompleteEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "enrollment")
	if !ok {
		return
	}

	e, err := h.service.CompleteEnrollment(r.Context(), middleware.GetActor(r.Context()), id)
	if err != nil {
		core.ServiceError(w, "enrollment", err)
		return
	}

	core.OK(w, ToEnrollmentResponse(e))
}

func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	courseID, ok := parseID(w, r, "course")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	actor := middleware.GetActor(r.Context())
	req.CourseID = courseID
	req.StudentID = actor.UserID

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	review, err := h.service.AddReview(r.Context(), actor, req)
	if err != nil {
		core.ServiceError(w, "course", err)
		return
	}

	core.Created(w, ToReviewResponse(review))
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	courseID, ok := parseID(w, r, "course")
	if !ok {
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), courseID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, mapSlice(reviews, ToReviewResponse))
}

func (h *Handler) AddContent(w http.ResponseWriter, r *http.Request) {
	courseID, ok := parseID(w, r, "course")
	if !ok {
		return
	}

	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	req.CourseID = courseID

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.AddContent(r.Context(), middleware.GetActor(r.Context()), req)
	if err != nil {
		core.ServiceError(w, "course", err)
		return
	}

	core.Created(w, ToContentResponse(c))
}

func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	courseID, ok := parseID(w, r, "course")
	if !ok {
		return
	}

	items, err := h.service.ListContent(r.Context(), courseID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, mapSlice(items, ToContentResponse))
}

func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "content")
	if !ok {
		return
	}

	if err := h.service.DeleteContent(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		core.ServiceError(w, "content", err)
		return
	}

	core.NoContent(w)
}

func parseID(w http.ResponseWriter, r *http.Request, resource string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid "+resource+" id")
		return 0, false
	}
	return id, true
}

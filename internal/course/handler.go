// AngelaMos | 2026
// handler.go

package course

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
	r.Get("/courses", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/course", h.Create)
		r.Put("/course/{id}", h.Update)
		r.Delete("/course/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCourseResponseList(courses))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Create(r.Context(), middleware.GetActor(r.Context()), req)
	if err != nil {
		core.ServiceError(w, "course", err)
		return
	}

	core.Created(w, ToCourseResponse(c))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Update(r.Context(), middleware.GetActor(r.Context()), id, req)
	if err != nil {
		core.ServiceError(w, "course", err)
		return
	}

	core.OK(w, ToCourseResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		core.ServiceError(w, "course", err)
		return
	}

	core.OK(w, MessageResponse{Message: "Course deleted successfully"})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid course id")
		return 0, false
	}
	return id, true
}

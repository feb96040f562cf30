// AngelaMos | 2026
// handler.go

package subscription

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

		r.Get("/subscriptions", h.List)
		r.Post("/subscriptions", h.Subscribe)
		r.Post("/subscriptions/{id}/end", h.End)
	})
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actor := middleware.GetActor(r.Context())
	sub, err := h.service.Subscribe(r.Context(), actor, actor.UserID, req.TutorID)
	if err != nil {
		core.ServiceError(w, "user", err)
		return
	}

	core.Created(w, ToSubscriptionResponse(sub))
}

func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid subscription id")
		return
	}

	sub, err := h.service.End(r.Context(), middleware.GetActor(r.Context()), id)
	if err != nil {
		core.ServiceError(w, "subscription", err)
		return
	}

	core.OK(w, ToSubscriptionResponse(sub))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListMine(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponseList(subs))
}

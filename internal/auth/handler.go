// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

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

// RegisterRoutes mounts the credential endpoints. credentialLimit wraps
// only /register and /login; pass nil to skip it.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	credentialLimit func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		if credentialLimit != nil {
			r.Use(credentialLimit)
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.With(authenticator).Get("/protected", h.Protected)
}

// RegisterAdminRoutes mounts account creation for super admins.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.With(authenticator, adminOnly).Post("/admin/register", h.AdminRegister)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeRegisterError(w, err)
		return
	}

	core.Created(w, RegisterResponse{
		Message: "User registered successfully",
		User:    toUserResponse(user),
	})
}

// AdminRegister creates an account on behalf of a super admin, who may
// grant any role including super admin.
func (h *Handler) AdminRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.CreateAccount(r.Context(), middleware.GetActor(r.Context()), req)
	if err != nil {
		writeRegisterError(w, err)
		return
	}

	core.Created(w, RegisterResponse{
		Message: "User created successfully",
		User:    toUserResponse(user),
	})
}

func writeRegisterError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrUserExists) {
		core.JSONError(w, core.DuplicateError("username or email"))
		return
	}
	core.ServiceError(w, "user", err)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(
				w,
				core.UnauthorizedError("invalid email or password"),
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Protected(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		core.Unauthorized(w, "")
		return
	}

	core.OK(w, ProtectedResponse{
		LoggedInAs: Identity{ID: claims.UserID, Role: claims.Role},
	})
}

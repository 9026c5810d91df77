package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orgpass/orgpass/internal/auth"
	"github.com/orgpass/orgpass/internal/handler/dto"
	"github.com/orgpass/orgpass/internal/model"
	"github.com/orgpass/orgpass/internal/service"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// requireSelf enforces that the caller may only touch their own user
// resource. Mismatches return 401 (the contract predates this API's
// 403 semantics and clients depend on the 401).
func (h *UserHandler) requireSelf(w http.ResponseWriter, r *http.Request, targetID string) bool {
	callerID := auth.UserIDFromContext(r.Context())
	if callerID != targetID {
		h.logger.Warn("self check failed",
			"caller_id", callerID,
			"target_id", targetID,
		)
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	return true
}

// Details handles GET /auth/api/users/{id}.
func (h *UserHandler) Details(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.requireSelf(w, r, id) {
		return
	}

	user, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "User details retrieved successfully", user)
}

// Update handles PUT /auth/api/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.requireSelf(w, r, id) {
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateUpdateUser(req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	user, err := h.svc.Update(r.Context(), id, model.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_updated", "user_id", id)

	writeSuccess(w, http.StatusOK, "User details updated successfully", user)
}

// handleServiceError maps user service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrUserExists):
		writeMessage(w, http.StatusBadRequest, "Email already in use")
	default:
		h.logger.Error("internal_error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orgpass/orgpass/internal/auth"
	"github.com/orgpass/orgpass/internal/handler/dto"
	"github.com/orgpass/orgpass/internal/service"
)

// OrganizationHandler handles organisation and membership endpoints.
//
// These routes require a valid token but deliberately not membership
// in the target organisation: any authenticated caller can read any
// organisation. That looseness is part of the existing contract.
type OrganizationHandler struct {
	svc    *service.OrganizationService
	logger *slog.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(svc *service.OrganizationService, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /auth/api/organisations.
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Organizations retrieved successfully", dto.OrganizationListData{
		Organizations: orgs,
	})
}

// Create handles POST /auth/api/organisations.
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateCreateOrganization(req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	org, err := h.svc.Create(r.Context(), service.CreateOrganizationInput{
		OrgID:       req.OrgID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("organization_created", "org_id", org.OrgID)

	writeSuccess(w, http.StatusCreated, "Organization created successfully", org)
}

// Get handles GET /auth/api/organisations/{orgId}.
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")

	org, err := h.svc.Get(r.Context(), orgID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Organization retrieved successfully", org)
}

// ListUsers handles GET /auth/api/organisations/{orgId}/users.
func (h *OrganizationHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")

	org, users, err := h.svc.ListMembers(r.Context(), orgID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Users in organization retrieved successfully", dto.OrganizationUsersData{
		Organization: org,
		Users:        users,
	})
}

// AddUser handles POST /auth/api/organisations/{orgId}/users.
// Adding a user who is already a member succeeds without change.
func (h *OrganizationHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")

	var req dto.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateAddMember(req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	if err := h.svc.AddMember(r.Context(), orgID, req.UserID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("member_added", "org_id", orgID, "user_id", req.UserID)

	writeSuccess(w, http.StatusOK, "User added to organization successfully", nil)
}

// requireExistingCaller resolves the authenticated userId to a user
// row. The /api listing routes 404 when the caller's account is gone,
// so a token outliving its user stops working there.
func (h *OrganizationHandler) requireExistingCaller(w http.ResponseWriter, r *http.Request) bool {
	callerID := auth.UserIDFromContext(r.Context())
	exists, err := h.svc.UserExists(r.Context(), callerID)
	if err != nil {
		h.handleServiceError(w, err)
		return false
	}
	if !exists {
		writeMessage(w, http.StatusNotFound, "User not found")
		return false
	}
	return true
}

// ListForCaller handles GET /api/organisations.
func (h *OrganizationHandler) ListForCaller(w http.ResponseWriter, r *http.Request) {
	if !h.requireExistingCaller(w, r) {
		return
	}

	orgs, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "User organisations retrieved successfully", dto.OrganisationListData{
		Organisations: orgs,
	})
}

// GetForCaller handles GET /api/organisations/{orgId}.
func (h *OrganizationHandler) GetForCaller(w http.ResponseWriter, r *http.Request) {
	if !h.requireExistingCaller(w, r) {
		return
	}

	org, err := h.svc.Get(r.Context(), chi.URLParam(r, "orgId"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Organization retrieved successfully", org)
}

// handleServiceError maps organisation service errors to HTTP responses.
func (h *OrganizationHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrOrganizationNotFound):
		writeMessage(w, http.StatusNotFound, "Organization not found")
	case errors.Is(err, service.ErrOrganizationExists):
		writeMessage(w, http.StatusBadRequest, "Organization already exists")
	case errors.Is(err, service.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

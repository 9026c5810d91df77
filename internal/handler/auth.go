package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/orgpass/orgpass/internal/handler/dto"
	"github.com/orgpass/orgpass/internal/service"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateRegister(req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	result, err := h.svc.Register(r.Context(), service.RegisterInput{
		UserID:                  req.UserID,
		Email:                   req.Email,
		Password:                req.Password,
		FirstName:               req.FirstName,
		LastName:                req.LastName,
		Phone:                   req.Phone,
		OrganizationName:        req.OrganizationName,
		OrganizationDescription: req.OrganizationDescription,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			writeMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
		h.logger.Error("registration failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("user_registered",
		"user_id", result.User.UserID,
		"org_id", result.Organization.OrgID,
	)

	writeSuccess(w, http.StatusCreated, "Registration successful", dto.RegisterData{
		AccessToken:  result.Token,
		User:         result.User,
		Organization: result.Organization,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validateLogin(req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	result, err := h.svc.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One message for unknown user and wrong password alike.
			writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.logger.Error("login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("user_logged_in", "user_id", result.User.UserID)

	writeSuccess(w, http.StatusOK, "Login successful", dto.LoginData{
		AccessToken: result.Token,
		User:        result.User,
	})
}

// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/orgpass/orgpass/internal/model"

// SuccessResponse is the envelope wrapping every successful response.
type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the body for domain errors (400/401/404).
type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse is the 422 body for field validation failures.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	UserID                  string `json:"userId"`
	FirstName               string `json:"firstName"`
	LastName                string `json:"lastName"`
	Email                   string `json:"email"`
	Password                string `json:"password"`
	ConfirmPassword         string `json:"confirm_password"`
	Phone                   string `json:"phone"`
	OrganizationName        string `json:"organization_name"`
	OrganizationDescription string `json:"organization_description"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// RegisterData is the success payload for registration.
type RegisterData struct {
	AccessToken  string              `json:"accessToken"`
	User         *model.User         `json:"user"`
	Organization *model.Organization `json:"organization"`
}

// LoginData is the success payload for login.
type LoginData struct {
	AccessToken string      `json:"accessToken"`
	User        *model.User `json:"user"`
}

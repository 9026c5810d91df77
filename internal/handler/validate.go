package handler

import (
	"regexp"

	"github.com/orgpass/orgpass/internal/handler/dto"
)

// Field limits for registration input.
const (
	minUserIDLength   = 4
	maxUserIDLength   = 20
	minPasswordLength = 6
)

// emailPattern is a permissive shape check, not RFC validation.
// The real uniqueness guarantee lives in the database constraint.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// fieldErrors accumulates per-field validation messages.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

// validateRegister checks the registration request and returns the
// per-field errors, or nil when the input is acceptable.
func validateRegister(req dto.RegisterRequest) map[string][]string {
	errs := fieldErrors{}

	if req.UserID == "" {
		errs.add("userId", "This field is required.")
	} else if len(req.UserID) < minUserIDLength || len(req.UserID) > maxUserIDLength {
		errs.add("userId", "Field must be between 4 and 20 characters long.")
	}

	if req.Email == "" {
		errs.add("email", "This field is required.")
	} else if !emailPattern.MatchString(req.Email) {
		errs.add("email", "Invalid email address.")
	}

	if req.Password == "" {
		errs.add("password", "This field is required.")
	} else if len(req.Password) < minPasswordLength {
		errs.add("password", "Field must be at least 6 characters long.")
	}

	if req.ConfirmPassword == "" {
		errs.add("confirm_password", "This field is required.")
	} else if req.Password != "" && req.ConfirmPassword != req.Password {
		errs.add("confirm_password", "Passwords must match.")
	}

	if req.FirstName == "" {
		errs.add("firstName", "This field is required.")
	}
	if req.LastName == "" {
		errs.add("lastName", "This field is required.")
	}
	if req.OrganizationName == "" {
		errs.add("organization_name", "This field is required.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateLogin checks the login request.
func validateLogin(req dto.LoginRequest) map[string][]string {
	errs := fieldErrors{}

	if req.UserID == "" {
		errs.add("userId", "This field is required.")
	}
	if req.Password == "" {
		errs.add("password", "This field is required.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateUpdateUser checks the profile update request.
func validateUpdateUser(req dto.UpdateUserRequest) map[string][]string {
	errs := fieldErrors{}

	if req.Email != nil && !emailPattern.MatchString(*req.Email) {
		errs.add("email", "Invalid email address.")
	}
	if req.FirstName != nil && *req.FirstName == "" {
		errs.add("firstName", "This field cannot be empty.")
	}
	if req.LastName != nil && *req.LastName == "" {
		errs.add("lastName", "This field cannot be empty.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateCreateOrganization checks the direct creation request.
func validateCreateOrganization(req dto.CreateOrganizationRequest) map[string][]string {
	errs := fieldErrors{}

	if req.OrgID == "" {
		errs.add("orgId", "This field is required.")
	}
	if req.Name == "" {
		errs.add("name", "This field is required.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateAddMember checks the add-member request.
func validateAddMember(req dto.AddMemberRequest) map[string][]string {
	errs := fieldErrors{}

	if req.UserID == "" {
		errs.add("userId", "This field is required.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

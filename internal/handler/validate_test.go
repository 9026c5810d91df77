package handler

import (
	"testing"

	"github.com/orgpass/orgpass/internal/handler/dto"
)

func validRegisterRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		UserID:           "alice01",
		FirstName:        "Alice",
		LastName:         "Smith",
		Email:            "alice@example.com",
		Password:         "hunter22",
		ConfirmPassword:  "hunter22",
		Phone:            "555-0100",
		OrganizationName: "Acme",
	}
}

func TestValidateRegister_Valid(t *testing.T) {
	t.Parallel()

	if errs := validateRegister(validRegisterRequest()); errs != nil {
		t.Errorf("Expected no errors, got: %v", errs)
	}
}

func TestValidateRegister_FieldRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*dto.RegisterRequest)
		field   string
		message string
	}{
		{
			name:    "missing userId",
			mutate:  func(r *dto.RegisterRequest) { r.UserID = "" },
			field:   "userId",
			message: "This field is required.",
		},
		{
			name:    "userId too short",
			mutate:  func(r *dto.RegisterRequest) { r.UserID = "ab" },
			field:   "userId",
			message: "Field must be between 4 and 20 characters long.",
		},
		{
			name:    "userId too long",
			mutate:  func(r *dto.RegisterRequest) { r.UserID = "abcdefghijklmnopqrstu" },
			field:   "userId",
			message: "Field must be between 4 and 20 characters long.",
		},
		{
			name:    "missing email",
			mutate:  func(r *dto.RegisterRequest) { r.Email = "" },
			field:   "email",
			message: "This field is required.",
		},
		{
			name:    "malformed email",
			mutate:  func(r *dto.RegisterRequest) { r.Email = "not-an-email" },
			field:   "email",
			message: "Invalid email address.",
		},
		{
			name:    "missing password",
			mutate:  func(r *dto.RegisterRequest) { r.Password = "" },
			field:   "password",
			message: "This field is required.",
		},
		{
			name:    "password too short",
			mutate:  func(r *dto.RegisterRequest) { r.Password = "abc"; r.ConfirmPassword = "abc" },
			field:   "password",
			message: "Field must be at least 6 characters long.",
		},
		{
			name:    "missing confirm_password",
			mutate:  func(r *dto.RegisterRequest) { r.ConfirmPassword = "" },
			field:   "confirm_password",
			message: "This field is required.",
		},
		{
			name:    "password mismatch",
			mutate:  func(r *dto.RegisterRequest) { r.ConfirmPassword = "different22" },
			field:   "confirm_password",
			message: "Passwords must match.",
		},
		{
			name:    "missing firstName",
			mutate:  func(r *dto.RegisterRequest) { r.FirstName = "" },
			field:   "firstName",
			message: "This field is required.",
		},
		{
			name:    "missing lastName",
			mutate:  func(r *dto.RegisterRequest) { r.LastName = "" },
			field:   "lastName",
			message: "This field is required.",
		},
		{
			name:    "missing organization_name",
			mutate:  func(r *dto.RegisterRequest) { r.OrganizationName = "" },
			field:   "organization_name",
			message: "This field is required.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegisterRequest()
			tc.mutate(&req)

			errs := validateRegister(req)
			if errs == nil {
				t.Fatal("Expected validation errors, got nil")
			}

			msgs, ok := errs[tc.field]
			if !ok {
				t.Fatalf("Expected error on field %q, got: %v", tc.field, errs)
			}
			found := false
			for _, m := range msgs {
				if m == tc.message {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected message %q on field %q, got: %v", tc.message, tc.field, msgs)
			}
		})
	}
}

func TestValidateRegister_PhoneOptional(t *testing.T) {
	t.Parallel()

	req := validRegisterRequest()
	req.Phone = ""

	if errs := validateRegister(req); errs != nil {
		t.Errorf("Phone is optional; expected no errors, got: %v", errs)
	}
}

func TestValidateLogin(t *testing.T) {
	t.Parallel()

	if errs := validateLogin(dto.LoginRequest{UserID: "alice01", Password: "hunter22"}); errs != nil {
		t.Errorf("Expected no errors, got: %v", errs)
	}

	errs := validateLogin(dto.LoginRequest{})
	if errs == nil {
		t.Fatal("Expected validation errors for empty login")
	}
	if _, ok := errs["userId"]; !ok {
		t.Errorf("Expected userId error, got: %v", errs)
	}
	if _, ok := errs["password"]; !ok {
		t.Errorf("Expected password error, got: %v", errs)
	}
}

func TestValidateUpdateUser(t *testing.T) {
	t.Parallel()

	empty := ""
	bad := "not-an-email"
	good := "new@example.com"

	if errs := validateUpdateUser(dto.UpdateUserRequest{}); errs != nil {
		t.Errorf("Empty update is valid (no-op); got: %v", errs)
	}
	if errs := validateUpdateUser(dto.UpdateUserRequest{Email: &good}); errs != nil {
		t.Errorf("Expected no errors, got: %v", errs)
	}

	errs := validateUpdateUser(dto.UpdateUserRequest{Email: &bad, FirstName: &empty})
	if errs == nil {
		t.Fatal("Expected validation errors")
	}
	if _, ok := errs["email"]; !ok {
		t.Errorf("Expected email error, got: %v", errs)
	}
	if _, ok := errs["firstName"]; !ok {
		t.Errorf("Expected firstName error, got: %v", errs)
	}
}

func TestValidateCreateOrganization(t *testing.T) {
	t.Parallel()

	req := dto.CreateOrganizationRequest{OrgID: "org-1", Name: "Acme"}
	if errs := validateCreateOrganization(req); errs != nil {
		t.Errorf("Expected no errors, got: %v", errs)
	}

	errs := validateCreateOrganization(dto.CreateOrganizationRequest{})
	if errs == nil {
		t.Fatal("Expected validation errors")
	}
	if _, ok := errs["orgId"]; !ok {
		t.Errorf("Expected orgId error, got: %v", errs)
	}
	if _, ok := errs["name"]; !ok {
		t.Errorf("Expected name error, got: %v", errs)
	}
}

func TestValidateAddMember(t *testing.T) {
	t.Parallel()

	if errs := validateAddMember(dto.AddMemberRequest{UserID: "alice01"}); errs != nil {
		t.Errorf("Expected no errors, got: %v", errs)
	}
	if errs := validateAddMember(dto.AddMemberRequest{}); errs == nil {
		t.Error("Expected validation errors for missing userId")
	}
}

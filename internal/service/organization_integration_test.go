//go:build integration

package service

import (
	"errors"
	"testing"

	"github.com/orgpass/orgpass/internal/model"
)

// ============================================================================
// Organisation Service Integration Tests
// ============================================================================

func TestIntegrationOrganizationService_CreateStrict(t *testing.T) {
	ctx, env := newServiceTestEnv(t)

	input := CreateOrganizationInput{OrgID: "org-acme", Name: "Acme", Description: "widgets"}

	org, err := env.orgs.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if org.OrgID != "org-acme" {
		t.Errorf("OrgID mismatch: got %q", org.OrgID)
	}

	// Direct creation never falls back to the existing row.
	if _, err := env.orgs.Create(ctx, input); !errors.Is(err, ErrOrganizationExists) {
		t.Errorf("Expected ErrOrganizationExists, got: %v", err)
	}
}

func TestIntegrationOrganizationService_GetNotFound(t *testing.T) {
	ctx, env := newServiceTestEnv(t)

	if _, err := env.orgs.Get(ctx, "no-such-org"); !errors.Is(err, ErrOrganizationNotFound) {
		t.Errorf("Expected ErrOrganizationNotFound, got: %v", err)
	}
}

func TestIntegrationOrganizationService_AddMember(t *testing.T) {
	ctx, env := newServiceTestEnv(t)

	if _, err := env.auth.Register(ctx, registerInput("alice01", "Acme")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	org, err := env.orgs.Create(ctx, CreateOrganizationInput{OrgID: "org-globex", Name: "Globex"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := env.orgs.AddMember(ctx, org.OrgID, "alice01"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	// Idempotent.
	if err := env.orgs.AddMember(ctx, org.OrgID, "alice01"); err != nil {
		t.Fatalf("Repeated AddMember failed: %v", err)
	}

	_, members, err := env.orgs.ListMembers(ctx, org.OrgID)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].UserID != "alice01" {
		t.Errorf("Expected alice01 as sole member, got: %v", members)
	}
}

func TestIntegrationOrganizationService_AddMemberErrors(t *testing.T) {
	ctx, env := newServiceTestEnv(t)

	if _, err := env.auth.Register(ctx, registerInput("alice01", "Acme")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	org, err := env.orgs.Create(ctx, CreateOrganizationInput{OrgID: "org-globex", Name: "Globex"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := env.orgs.AddMember(ctx, "no-such-org", "alice01"); !errors.Is(err, ErrOrganizationNotFound) {
		t.Errorf("Expected ErrOrganizationNotFound, got: %v", err)
	}
	if err := env.orgs.AddMember(ctx, org.OrgID, "nobody99"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationOrganizationService_UserExists(t *testing.T) {
	ctx, env := newServiceTestEnv(t)

	if _, err := env.auth.Register(ctx, registerInput("alice01", "Acme")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	exists, err := env.orgs.UserExists(ctx, "alice01")
	if err != nil {
		t.Fatalf("UserExists failed: %v", err)
	}
	if !exists {
		t.Error("Expected alice01 to exist")
	}

	exists, err = env.orgs.UserExists(ctx, "nobody99")
	if err != nil {
		t.Fatalf("UserExists failed: %v", err)
	}
	if exists {
		t.Error("Expected nobody99 to be absent")
	}
}

func TestIntegrationUserService_GetAndUpdate(t *testing.T) {
	ctx, env := newServiceTestEnv(t)

	if _, err := env.auth.Register(ctx, registerInput("alice01", "Acme")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := env.users.Get(ctx, "alice01")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if user.Email != "alice01@example.com" {
		t.Errorf("Email mismatch: got %q", user.Email)
	}

	newPhone := "555-0100"
	updated, err := env.users.Update(ctx, "alice01", model.UserUpdate{Phone: &newPhone})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Phone != "555-0100" {
		t.Errorf("Phone not updated: got %q", updated.Phone)
	}
	if updated.FirstName != user.FirstName {
		t.Errorf("FirstName changed unexpectedly: got %q", updated.FirstName)
	}

	if _, err := env.users.Get(ctx, "nobody99"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

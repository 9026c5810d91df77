package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgpass/orgpass/internal/cache"
	"github.com/orgpass/orgpass/internal/metrics"
	"github.com/orgpass/orgpass/internal/model"
	"github.com/orgpass/orgpass/internal/repository"
)

// OrganizationService handles organisation and membership operations.
type OrganizationService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(repo *repository.Repository, c *cache.Cache, recorder metrics.Recorder) *OrganizationService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &OrganizationService{
		repo:    repo,
		cache:   c,
		metrics: recorder,
	}
}

// CreateOrganizationInput defines input for the direct creation endpoint.
type CreateOrganizationInput struct {
	OrgID       string
	Name        string
	Description string
}

// Create inserts a new organisation under the strict policy: a taken
// orgId (or name) is rejected, unlike the registration flow's
// find-or-create by name.
func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput) (*model.Organization, error) {
	org := &model.Organization{
		ID:          newULID(),
		OrgID:       input.OrgID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateOrganization(ctx, org); err != nil {
		if errors.Is(err, repository.ErrOrganizationExists) {
			return nil, ErrOrganizationExists
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.metrics.IncOrganizationCreated()

	return org, nil
}

// List returns every organisation.
func (s *OrganizationService) List(ctx context.Context) ([]*model.Organization, error) {
	orgs, err := s.repo.ListOrganizations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// Get returns an organisation by external orgId, reading through the
// cache.
func (s *OrganizationService) Get(ctx context.Context, orgID string) (*model.Organization, error) {
	if s.cache != nil {
		if org, err := s.cache.GetOrganization(ctx, orgID); err == nil {
			return org, nil
		}
	}

	org, err := s.repo.GetOrganizationByOrgID(ctx, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetOrganization(ctx, org)
	}

	return org, nil
}

// ListMembers returns the organisation and its users.
func (s *OrganizationService) ListMembers(ctx context.Context, orgID string) (*model.Organization, []*model.User, error) {
	// Membership queries need the internal key, so this bypasses the
	// cached copy (which drops internal fields on serialization).
	org, err := s.repo.GetOrganizationByOrgID(ctx, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			return nil, nil, ErrOrganizationNotFound
		}
		return nil, nil, fmt.Errorf("failed to get organization: %w", err)
	}

	users, err := s.repo.ListMembers(ctx, org.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	return org, users, nil
}

// AddMember links a user to an organisation. Idempotent: adding an
// existing member succeeds without creating a second record.
func (s *OrganizationService) AddMember(ctx context.Context, orgID, userID string) error {
	org, err := s.repo.GetOrganizationByOrgID(ctx, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrOrganizationNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to get organization: %w", err)
	}

	user, err := s.repo.GetUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.repo.AddMember(ctx, org.ID, user.ID); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.metrics.IncMembershipAdded()

	return nil
}

// UserExists reports whether the external userId resolves to a user.
// The listing routes under /api return 404 for callers whose account
// no longer exists, mirroring their identity check.
func (s *OrganizationService) UserExists(ctx context.Context, userID string) (bool, error) {
	_, err := s.repo.GetUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return true, nil
}

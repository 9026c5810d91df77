// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/orgpass/orgpass/internal/auth"
	"github.com/orgpass/orgpass/internal/metrics"
	"github.com/orgpass/orgpass/internal/model"
	"github.com/orgpass/orgpass/internal/repository"
)

// Service errors.
var (
	// ErrUserExists is returned when the userId or email is taken.
	// Deliberately coarse: registration does not reveal which.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned for every login failure,
	// identical whether the user is unknown or the password wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationExists   = errors.New("organization already exists")
	ErrOrganizationNotFound = errors.New("organization not found")
)

// AuthService handles registration and login.
type AuthService struct {
	repo    *repository.Repository
	tokens  *auth.TokenIssuer
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.Repository, tokens *auth.TokenIssuer, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		repo:    repo,
		tokens:  tokens,
		metrics: recorder,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	UserID                  string
	Email                   string
	Password                string
	FirstName               string
	LastName                string
	Phone                   string
	OrganizationName        string
	OrganizationDescription string
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	Token        string
	User         *model.User
	Organization *model.Organization
}

// Register creates a user, joins them to their organisation (created
// on demand by name), and issues an access token. The organisation
// and user writes share one transaction, so a duplicate userId/email
// never leaves a stray organisation behind.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           newULID(),
		UserID:       input.UserID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The generated orgId only sticks when this registration wins the
	// insert; an existing organisation keeps its own.
	org := &model.Organization{
		ID:          newULID(),
		OrgID:       newULID(),
		Name:        input.OrganizationName,
		Description: input.OrganizationDescription,
		CreatedAt:   now,
	}

	created, err := s.repo.RegisterUser(ctx, user, org)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	token, err := s.tokens.Issue(user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncUserRegistered()

	return &AuthResult{
		Token:        token,
		User:         user,
		Organization: created,
	}, nil
}

// Login verifies credentials and issues an access token. A missing
// user and a wrong password produce the same error; the caller gets
// no oracle for probing which userIds exist.
func (s *AuthService) Login(ctx context.Context, userID, password string) (*AuthResult, error) {
	user, err := s.repo.GetUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncLoginSuccess()

	return &AuthResult{
		Token: token,
		User:  user,
	}, nil
}

// newULID generates a lexicographically sortable unique identifier.
func newULID() string {
	return ulid.Make().String()
}

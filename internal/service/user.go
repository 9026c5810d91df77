package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/orgpass/orgpass/internal/cache"
	"github.com/orgpass/orgpass/internal/metrics"
	"github.com/orgpass/orgpass/internal/model"
	"github.com/orgpass/orgpass/internal/repository"
)

// UserService handles user profile reads and updates.
type UserService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, c *cache.Cache, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		cache:   c,
		metrics: recorder,
	}
}

// Get returns a user profile by external userId, reading through the
// cache. Cache failures degrade to a database read, never an error.
func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	if s.cache != nil {
		if user, err := s.cache.GetUser(ctx, userID); err == nil {
			s.metrics.IncProfileCacheHit()
			return user, nil
		}
		s.metrics.IncProfileCacheMiss()
	}

	user, err := s.repo.GetUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetUser(ctx, user)
	}

	return user, nil
}

// Update applies a partial profile update. Only the fields carried in
// the update change; everything else keeps its stored value. The
// cached profile is invalidated before the fresh row is returned.
func (s *UserService) Update(ctx context.Context, userID string, update model.UserUpdate) (*model.User, error) {
	if update.IsZero() {
		// Nothing to write; hand back the current row.
		return s.Get(ctx, userID)
	}

	user, err := s.repo.UpdateUser(ctx, userID, update)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrUserExists):
			// Email collided with another account.
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.DeleteUser(ctx, userID)
	}

	return user, nil
}

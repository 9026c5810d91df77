package repository

import (
	"context"
	"fmt"

	"github.com/orgpass/orgpass/internal/model"
)

// RegisterUser runs the whole registration flow in one transaction:
// find-or-create the organisation by name, insert the user, and link
// the membership. If the user insert fails (duplicate userId or
// email) the organisation insert rolls back with it, so a failed
// registration never leaves an orphaned organisation behind.
func (r *Repository) RegisterUser(ctx context.Context, user *model.User, org *model.Organization) (*model.Organization, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin registration: %w", err)
	}
	defer tx.Rollback(ctx)

	created, err := findOrCreateOrganizationByName(ctx, tx, org)
	if err != nil {
		return nil, err
	}

	if err := createUser(ctx, tx, user); err != nil {
		return nil, err
	}

	if err := addMember(ctx, tx, created.ID, user.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	return created, nil
}

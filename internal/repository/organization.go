package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orgpass/orgpass/internal/model"
)

// Common errors for organisation repository operations.
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationExists   = errors.New("organization already exists")
)

const orgColumns = `id, org_id, name, description, created_at`

// CreateOrganization inserts a new organisation. Fails with
// ErrOrganizationExists when the external org_id (or name) is taken.
func (r *Repository) CreateOrganization(ctx context.Context, org *model.Organization) error {
	query := `
		INSERT INTO organisations (id, org_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		org.ID,
		org.OrgID,
		org.Name,
		org.Description,
		org.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrOrganizationExists
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}

	return nil
}

// GetOrganizationByOrgID retrieves an organisation by its external identifier.
func (r *Repository) GetOrganizationByOrgID(ctx context.Context, orgID string) (*model.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organisations WHERE org_id = $1`

	org, err := scanOrganization(r.pool.QueryRow(ctx, query, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization by org_id: %w", err)
	}

	return org, nil
}

// ListOrganizations returns every organisation ordered by creation time.
func (r *Repository) ListOrganizations(ctx context.Context) ([]*model.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organisations ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*model.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate organizations: %w", err)
	}

	return orgs, nil
}

// findOrCreateOrganizationByName returns the organisation with the
// given name, creating it first if absent. The insert races safely:
// ON CONFLICT DO NOTHING followed by a reselect means two concurrent
// registrations for the same name converge on one row.
func findOrCreateOrganizationByName(ctx context.Context, q querier, org *model.Organization) (*model.Organization, error) {
	insert := `
		INSERT INTO organisations (id, org_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO NOTHING
	`

	_, err := q.Exec(ctx, insert,
		org.ID,
		org.OrgID,
		org.Name,
		org.Description,
		org.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert organization: %w", err)
	}

	query := `SELECT ` + orgColumns + ` FROM organisations WHERE name = $1`
	existing, err := scanOrganization(q.QueryRow(ctx, query, org.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to reselect organization: %w", err)
	}

	return existing, nil
}

// FindOrCreateOrganizationByName is the standalone variant used
// outside the registration transaction.
func (r *Repository) FindOrCreateOrganizationByName(ctx context.Context, org *model.Organization) (*model.Organization, error) {
	return findOrCreateOrganizationByName(ctx, r.pool, org)
}

// AddMember links a user to an organisation. Adding an existing
// member is a silent no-op.
func (r *Repository) AddMember(ctx context.Context, orgInternalID, userInternalID string) error {
	return addMember(ctx, r.pool, orgInternalID, userInternalID)
}

func addMember(ctx context.Context, q querier, orgInternalID, userInternalID string) error {
	query := `
		INSERT INTO user_organisations (user_id, organisation_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := q.Exec(ctx, query, userInternalID, orgInternalID); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// ListMembers returns the users belonging to an organisation.
func (r *Repository) ListMembers(ctx context.Context, orgInternalID string) ([]*model.User, error) {
	query := `
		SELECT u.id, u.user_id, u.first_name, u.last_name, u.email, u.phone, u.password_hash, u.created_at, u.updated_at
		FROM users u
		JOIN user_organisations uo ON uo.user_id = u.id
		WHERE uo.organisation_id = $1
		ORDER BY u.created_at, u.id
	`

	rows, err := r.pool.Query(ctx, query, orgInternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return users, nil
}

// scanOrganization scans an organisation row.
func scanOrganization(row pgx.Row) (*model.Organization, error) {
	var org model.Organization
	err := row.Scan(
		&org.ID,
		&org.OrgID,
		&org.Name,
		&org.Description,
		&org.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

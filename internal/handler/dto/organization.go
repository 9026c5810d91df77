package dto

import "github.com/orgpass/orgpass/internal/model"

// CreateOrganizationRequest is the request body for
// POST /auth/api/organisations.
type CreateOrganizationRequest struct {
	OrgID       string `json:"orgId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddMemberRequest is the request body for
// POST /auth/api/organisations/{orgId}/users.
type AddMemberRequest struct {
	UserID string `json:"userId"`
}

// OrganizationListData wraps the organisation list on the auth routes.
type OrganizationListData struct {
	Organizations []*model.Organization `json:"organizations"`
}

// OrganisationListData wraps the organisation list on the /api
// routes, which use the British spelling. The two spellings are a
// quirk of the public contract and both are kept.
type OrganisationListData struct {
	Organisations []*model.Organization `json:"organisations"`
}

// OrganizationUsersData is the payload for the member listing.
type OrganizationUsersData struct {
	Organization *model.Organization `json:"organization"`
	Users        []*model.User       `json:"users"`
}

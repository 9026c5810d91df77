package model

import "time"

// Organization is a named group users can belong to.
// OrgID is the external identifier; Name is unique as well, which the
// registration flow relies on for its find-or-create behaviour.
type Organization struct {
	ID          string    `json:"-"`
	OrgID       string    `json:"orgId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
}

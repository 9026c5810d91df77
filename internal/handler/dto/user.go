package dto

// UpdateUserRequest is the request body for PUT /auth/api/users/{id}.
// Pointer fields distinguish "absent" from "set to empty": only the
// fields the client sends are applied.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

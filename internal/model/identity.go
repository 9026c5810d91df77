package model

// Identity is the authenticated caller attached to a request after
// token validation. It carries only what the token itself asserts.
type Identity struct {
	UserID string
}

package model

// Admin is the authenticated operator of the review endpoints.
type Admin struct {
	Username string
}

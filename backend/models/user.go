package models

// Principal is the caller identity resolved for a request. Unauthenticated
// callers share the configured anonymous user id.
type Principal struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
}

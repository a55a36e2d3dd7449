// internal/models/user.go
package models

// User is the account snapshot the API returns on login and registration.
// It is cached in the session store for the nav shell and profile screen.
type User struct {
	ID             string   `json:"id,omitempty"`
	Username       string   `json:"username"`
	Name           string   `json:"name"`
	ApplicationIDs []string `json:"application_id,omitempty"`
}

// AuthResponse is the envelope of POST /api/user and POST /api/user/login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token,omitempty"`
}

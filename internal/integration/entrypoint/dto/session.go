package dto

// SignInRequest represents the request body for establishing a session.
type SignInRequest struct {
	Token string `json:"token" binding:"required"`
}

// SessionResponse represents the current session state in API responses.
type SessionResponse struct {
	SignedIn bool   `json:"signed_in"`
	Email    string `json:"email,omitempty"`
}

package httptransport

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// IssueTokenRequest is the identity payload posted after sign-in.
type IssueTokenRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type IssueTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type IdentityResponse struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

package apimodel

// LoginRequest is the body of POST /auth/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned from POST /auth/login/.
type LoginResponse struct {
	// Access is the short-lived SimpleJWT access token.
	// Usage: "Authorization: Bearer <access>"
	Access string `json:"access"`

	// Refresh is the long-lived token exchanged at /auth/token/refresh/.
	// The platform does not rotate it on refresh.
	Refresh string `json:"refresh"`

	User *User `json:"user,omitempty"`
}

// RefreshRequest is the body of POST /auth/token/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse carries the new access token.
type RefreshResponse struct {
	Access string `json:"access"`
}

// RegisterRequest is the body of POST /auth/register/.
type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Institution     string `json:"institution,omitempty"`
	Department      string `json:"department,omitempty"`
	Phone           string `json:"phone,omitempty"`
}

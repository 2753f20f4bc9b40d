// Package models defines the wire payloads exchanged with the backend and the
// in-memory profile the client keeps for the signed-in user.
package models

// AuthUser is the user object returned by the auth and profile endpoints.
// The backend may add fields over time; the client keeps only Profile.
type AuthUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNo         string `json:"phoneNo"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
	ProfilePhotoURL string `json:"profilePhotoUrl"`
	Role            string `json:"role,omitempty"`
}

// AuthResponse is returned by sign-up, sign-in and verify.
type AuthResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    *AuthUser `json:"user"`
}

// MessageResponse is the body of endpoints that only report a status, and of
// every error response.
type MessageResponse struct {
	Message string `json:"message"`
}

type SignUpPayload struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type SignInPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordPayload struct {
	Email string `json:"email"`
}

// ResetPasswordPayload redeems the code sent by forgot-password.
type ResetPasswordPayload struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

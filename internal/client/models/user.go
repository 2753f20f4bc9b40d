package models

// Profile is the subset of AuthUser the client keeps in memory.
type Profile struct {
	ID              string
	Name            string
	Email           string
	PhoneNo         string
	CreatedAt       string
	UpdatedAt       string
	ProfilePhotoURL string
}

type UpdateProfilePayload struct {
	Name    string `json:"name"`
	PhoneNo string `json:"phoneNo"`
}

type UpdateProfileResponse struct {
	Message string    `json:"message"`
	User    *AuthUser `json:"user"`
}

// ChangePasswordResponse carries the token that replaces every session the
// change ended.
type ChangePasswordResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ChangePasswordPayload struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UserSummary is one hit of the collaborator search.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type SearchUsersResponse struct {
	Message string        `json:"message"`
	Users   []UserSummary `json:"users"`
}

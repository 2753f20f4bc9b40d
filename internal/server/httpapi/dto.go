package httpapi

import (
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/server/models"
)

type userDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNo         string `json:"phoneNo"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
	ProfilePhotoURL string `json:"profilePhotoUrl"`
}

func toUserDTO(u *models.User) *userDTO {
	if u == nil {
		return nil
	}
	return &userDTO{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		PhoneNo:         u.PhoneNo,
		CreatedAt:       u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       u.UpdatedAt.UTC().Format(time.RFC3339),
		ProfilePhotoURL: u.ProfilePhotoURL,
	}
}

type userSummaryDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type authResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    *userDTO `json:"user"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type userResponse struct {
	Message string   `json:"message"`
	User    *userDTO `json:"user"`
}

type searchResponse struct {
	Message string           `json:"message"`
	Users   []userSummaryDTO `json:"users"`
}

type signUpRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	PhoneNo string `json:"phoneNo"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

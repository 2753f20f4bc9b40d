package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/server/services"
)

// PhotoField is the multipart field carrying the profile photo.
const PhotoField = "photo"

// multipart framing on top of the photo itself
const multipartOverhead = 64 << 10

var (
	errPhotoMissing  = &services.Error{Err: common.ErrorValidation, Message: "No photo uploaded"}
	errPhotoTooLarge = &services.Error{Err: common.ErrorValidation, Message: "Photo must be 5 MB or smaller"}
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeMessage(r.Context(), w, http.StatusOK, "OK")
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req signUpRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	res, err := s.users.SignUp(ctx, req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(ctx, w, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    toUserDTO(res.User),
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req signInRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	res, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(ctx, w, http.StatusOK, authResponse{
		Message: "Welcome back, " + res.User.Name + "!",
		Token:   res.Token,
		User:    toUserDTO(res.User),
	})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req forgotPasswordRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	if err := s.users.ForgotPassword(ctx, req.Email); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeMessage(ctx, w, http.StatusOK, "If an account exists for this email, a reset code has been sent.")
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req resetPasswordRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	if err := s.users.ResetPassword(ctx, req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeMessage(ctx, w, http.StatusOK, "Password has been reset. You can now sign in.")
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.users.SignOut(ctx, claimsFrom(ctx)); err != nil {
		s.writeError(ctx, w, err)
		return
	}
	s.writeMessage(ctx, w, http.StatusOK, "Signed out successfully")
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := s.users.Verify(ctx, claimsFrom(ctx).UserID, tokenFrom(ctx))
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(ctx, w, http.StatusOK, authResponse{
		Message: "Token is valid",
		Token:   res.Token,
		User:    toUserDTO(res.User),
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req updateProfileRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	u, err := s.users.UpdateProfile(ctx, claimsFrom(ctx).UserID, req.Name, req.PhoneNo)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(ctx, w, http.StatusOK, userResponse{Message: "Profile updated successfully", User: toUserDTO(u)})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req changePasswordRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	token, err := s.users.ChangePassword(ctx, claimsFrom(ctx).UserID, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(ctx, w, http.StatusOK, tokenResponse{Message: "Password changed successfully", Token: token})
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, common.MaxPhotoSize+multipartOverhead)

	file, _, err := r.FormFile(PhotoField)
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			s.writeError(ctx, w, errPhotoTooLarge)
		default:
			s.writeError(ctx, w, errPhotoMissing)
		}
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, common.MaxPhotoSize+1))
	if err != nil {
		s.writeError(ctx, w, errPhotoMissing)
		return
	}

	u, err := s.users.UploadPhoto(ctx, claimsFrom(ctx).UserID, data)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(ctx, w, http.StatusOK, userResponse{Message: "Profile photo updated", User: toUserDTO(u)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	found, err := s.users.Search(ctx, claimsFrom(ctx).UserID, r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	out := make([]userSummaryDTO, 0, len(found))
	for _, u := range found {
		out = append(out, userSummaryDTO{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	s.writeJSON(ctx, w, http.StatusOK, searchResponse{Message: "OK", Users: out})
}

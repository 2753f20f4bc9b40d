package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/dmitrijs2005/familyaccount/internal/client/client"
	"github.com/dmitrijs2005/familyaccount/internal/client/models"
	"github.com/dmitrijs2005/familyaccount/internal/client/tokenstore"
	"github.com/dmitrijs2005/familyaccount/internal/common"
)

// PhotoField is the multipart field name the backend reads the image from.
const PhotoField = "photo"

// UserService wraps the profile endpoints of the signed-in user.
type UserService interface {
	UpdateProfile(ctx context.Context, p models.UpdateProfilePayload) (*models.UpdateProfileResponse, error)
	// ChangePassword persists the replacement token the backend returns.
	ChangePassword(ctx context.Context, p models.ChangePasswordPayload) (*models.ChangePasswordResponse, error)
	UploadProfilePhoto(ctx context.Context, filename string, r io.Reader) (*models.UpdateProfileResponse, error)
	SearchUsers(ctx context.Context, query string) ([]models.UserSummary, error)
}

type userService struct {
	client client.Client
	tokens tokenstore.Store
}

func NewUserService(c client.Client, tokens tokenstore.Store) UserService {
	return &userService{client: c, tokens: tokens}
}

func (u *userService) UpdateProfile(ctx context.Context, p models.UpdateProfilePayload) (*models.UpdateProfileResponse, error) {
	var resp models.UpdateProfileResponse
	if err := u.client.Do(ctx, http.MethodPut, "/users/profile", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (u *userService) ChangePassword(ctx context.Context, p models.ChangePasswordPayload) (*models.ChangePasswordResponse, error) {
	var resp models.ChangePasswordResponse
	if err := u.client.Do(ctx, http.MethodPut, "/users/change-password", p, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := u.tokens.Set(ctx, resp.Token); err != nil {
			return nil, fmt.Errorf("persist token: %w", err)
		}
	}
	return &resp, nil
}

// UploadProfilePhoto sends r as a multipart form. The request bypasses the
// JSON pipeline, so the token is read here and the full header set is built
// locally.
func (u *userService) UploadProfilePhoto(ctx context.Context, filename string, r io.Reader) (*models.UpdateProfileResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(PhotoField, filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	token, err := u.tokens.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}

	h := http.Header{}
	h.Set("Content-Type", mw.FormDataContentType())
	h.Set("Accept", "application/json")
	if token != "" {
		h.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	var resp models.UpdateProfileResponse
	if err := u.client.DoWithHeaders(ctx, http.MethodPost, "/users/profile/photo", &buf, h, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (u *userService) SearchUsers(ctx context.Context, query string) ([]models.UserSummary, error) {
	var resp models.SearchUsersResponse
	path := "/users/search?q=" + url.QueryEscape(query)
	if err := u.client.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

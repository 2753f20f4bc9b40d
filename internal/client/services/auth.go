// Package services contains application services for the Family Account
// client. This file defines the authentication service: sign up, sign in,
// password reset, sign out and session verification, keeping the credential
// store in step with the backend's answers.
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/familyaccount/internal/client/client"
	"github.com/dmitrijs2005/familyaccount/internal/client/models"
	"github.com/dmitrijs2005/familyaccount/internal/client/tokenstore"
	"github.com/dmitrijs2005/familyaccount/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignUp, SignIn, Verify: persist the returned token when non-empty.
//   - CheckSession: same request as Verify, but never touches the store.
//     Callers that may have been superseded decide themselves whether the
//     token is still worth keeping.
//   - ForgotPassword, ResetPassword: no credential effect.
//   - SignOut: the credential store is empty afterwards, whatever the
//     request outcome.
//
// HTTP failures are returned unchanged.
type AuthService interface {
	SignUp(ctx context.Context, p models.SignUpPayload) (*models.AuthResponse, error)
	SignIn(ctx context.Context, p models.SignInPayload) (*models.AuthResponse, error)
	ForgotPassword(ctx context.Context, p models.ForgotPasswordPayload) (*models.MessageResponse, error)
	ResetPassword(ctx context.Context, p models.ResetPasswordPayload) (*models.MessageResponse, error)
	SignOut(ctx context.Context) (*models.MessageResponse, error)
	Verify(ctx context.Context) (*models.AuthResponse, error)
	CheckSession(ctx context.Context) (*models.AuthResponse, error)
}

type authService struct {
	client client.Client
	tokens tokenstore.Store
	logger logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// credential store.
func NewAuthService(c client.Client, tokens tokenstore.Store, logger logging.Logger) AuthService {
	return &authService{client: c, tokens: tokens, logger: logger.With("module", "auth")}
}

func (a *authService) SignUp(ctx context.Context, p models.SignUpPayload) (*models.AuthResponse, error) {
	return a.authenticate(ctx, http.MethodPost, "/auth/signup", p)
}

func (a *authService) SignIn(ctx context.Context, p models.SignInPayload) (*models.AuthResponse, error) {
	return a.authenticate(ctx, http.MethodPost, "/auth/signin", p)
}

func (a *authService) Verify(ctx context.Context) (*models.AuthResponse, error) {
	return a.authenticate(ctx, http.MethodGet, "/auth/verify", nil)
}

func (a *authService) CheckSession(ctx context.Context) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.client.Do(ctx, http.MethodGet, "/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// authenticate performs a request answered with an AuthResponse and stores
// the token it carries, if any, before returning.
func (a *authService) authenticate(ctx context.Context, method, path string, body any) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.client.Do(ctx, method, path, body, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		if err := a.tokens.Set(ctx, resp.Token); err != nil {
			return nil, fmt.Errorf("persist token: %w", err)
		}
		a.logger.Debug(ctx, "token persisted", "path", path)
	}
	return &resp, nil
}

func (a *authService) ForgotPassword(ctx context.Context, p models.ForgotPasswordPayload) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := a.client.Do(ctx, http.MethodPost, "/auth/forgot-password", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *authService) ResetPassword(ctx context.Context, p models.ResetPasswordPayload) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := a.client.Do(ctx, http.MethodPost, "/auth/reset-password", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignOut asks the backend to revoke the current token, then clears the
// store. The request carries the token so the backend knows which one to
// revoke.
func (a *authService) SignOut(ctx context.Context) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	reqErr := a.client.Do(ctx, http.MethodPost, "/auth/signout", nil, &resp)

	if err := a.tokens.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear token: %w", err)
	}
	if reqErr != nil {
		a.logger.Warn(ctx, "sign out request failed", "error", reqErr)
		return nil, reqErr
	}
	return &resp, nil
}

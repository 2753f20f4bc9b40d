package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/familyaccount/internal/client/client"
	"github.com/dmitrijs2005/familyaccount/internal/client/models"
	"github.com/dmitrijs2005/familyaccount/internal/client/session"
	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/validation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readPassword(prompt string) (string, error) {
	pw, err := getPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// printErrors shows validation failures under the form, one per field.
func (a *App) printErrors(errs validation.Errors) {
	for _, f := range errs.Fields() {
		fmt.Fprintf(a.out, "  %s %s\n", a.st.field.Render(f+":"), errs[f])
	}
}

// SignIn prompts for credentials, validates them and signs in. On success the
// directory is synced and the dashboard is shown.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPassword("Password")
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)

	if errs := validation.SignIn(email, password); !errs.OK() {
		a.printErrors(errs)
		return errs
	}

	resp, err := a.auth.SignIn(ctx, models.SignInPayload{Email: email, Password: password})
	if err != nil {
		a.notify(session.NoticeError, "Sign in failed", client.Message(err, "Unable to sign in. Please try again."))
		return err
	}

	a.dir.Sync(resp.User)
	a.notify(session.NoticeSuccess, "Signed in successfully", withDefault(resp.Message, "Welcome back!"))
	a.nav.Replace(session.RouteDashboard)
	return nil
}

// SignUp creates an account. The user is sent to the sign-in screen
// afterwards.
func (a *App) SignUp(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPassword("Password")
	if err != nil {
		return err
	}
	confirm, err := a.readPassword("Confirm password")
	if err != nil {
		return err
	}
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)

	if errs := validation.SignUp(name, email, password, confirm); !errs.OK() {
		a.printErrors(errs)
		return errs
	}

	resp, err := a.auth.SignUp(ctx, models.SignUpPayload{Name: name, Email: email, Password: password, ConfirmPassword: confirm})
	if err != nil {
		a.notify(session.NoticeError, "Sign up failed", client.Message(err, "Unable to sign up. Please try again."))
		return err
	}

	// The profile is loaded by the sign-in gate, not here: the sign-in
	// screen never shows a directory the gate has not checked.
	a.notify(session.NoticeSuccess, "Account created", withDefault(resp.Message, "Please sign in with your new account."))
	a.nav.Replace(session.RouteSignIn)
	return nil
}

func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)

	if errs := validation.ForgotPassword(email); !errs.OK() {
		a.printErrors(errs)
		return errs
	}

	resp, err := a.auth.ForgotPassword(ctx, models.ForgotPasswordPayload{Email: email})
	if err != nil {
		a.notify(session.NoticeError, "Request failed", client.Message(err, "Unable to send reset link. Please try again."))
		return err
	}

	a.notify(session.NoticeSuccess, "Check your email", withDefault(resp.Message, "We sent a password reset link to "+email+"."))
	return nil
}

// ResetPassword redeems a code from forgot and sends the user to sign in.
func (a *App) ResetPassword(ctx context.Context) error {
	code, err := getSimpleText(a.reader, "Reset code", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.readPassword("Confirm new password")
	if err != nil {
		return err
	}
	code = strings.TrimSpace(code)

	if errs := validation.ResetPassword(code, password, confirm); !errs.OK() {
		a.printErrors(errs)
		return errs
	}

	resp, err := a.auth.ResetPassword(ctx, models.ResetPasswordPayload{Token: code, NewPassword: password, ConfirmPassword: confirm})
	if err != nil {
		a.notify(session.NoticeError, "Reset failed", client.Message(err, "Unable to reset password. Please try again."))
		return err
	}

	a.notify(session.NoticeSuccess, "Password reset", withDefault(resp.Message, "You can now sign in with your new password."))
	a.nav.Replace(session.RouteSignIn)
	return nil
}

// SignOut revokes the session. The local credential and profile are gone
// afterwards even if the backend could not be reached.
func (a *App) SignOut(ctx context.Context) error {
	_, reqErr := a.auth.SignOut(ctx)
	a.dir.Clear()

	if tok, err := a.tokens.Get(ctx); err != nil || tok != "" {
		a.notify(session.NoticeError, "Logout failed", "Unable to clear session. Please try again.")
		if err != nil {
			return err
		}
		return reqErr
	}
	if reqErr != nil {
		a.logger.Warn(ctx, "sign out request failed", "error", reqErr)
	}

	a.nav.Replace(session.RouteSignIn)
	a.notify(session.NoticeSuccess, "Logged out", "You have been signed out successfully.")
	return nil
}

func withDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

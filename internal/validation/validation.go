// Package validation implements the client-side form checks that run before
// any request is sent. Each validator returns Errors keyed by form field; an
// empty result means the form may be submitted.
package validation

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/familyaccount/internal/common"
)

// Form field names.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldOldPassword     = "oldPassword"
	FieldNewPassword     = "newPassword"
	FieldPhoneNo         = "phoneNo"
	FieldResetCode       = "code"
)

// User-visible messages.
const (
	MsgNameRequired        = "Full name is required"
	MsgEmailRequired       = "Email is required"
	MsgEmailInvalid        = "Please enter a valid email"
	MsgPasswordRequired    = "Password is required"
	MsgPasswordTooShort    = "Password must be at least 8 characters"
	MsgConfirmRequired     = "Please confirm your password"
	MsgPasswordsMismatch   = "Passwords do not match"
	MsgOldPasswordRequired = "Current password is required"
	MsgPhoneInvalid        = "Please enter a valid phone number"
	MsgResetCodeRequired   = "Reset code is required"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)
)

// Errors maps a field name to the message shown under it.
type Errors map[string]string

// OK reports whether no field failed.
func (e Errors) OK() bool { return len(e) == 0 }

// Fields returns the failed field names in a stable order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// IsEmail reports whether s looks like an e-mail address.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

func checkEmail(errs Errors, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		errs[FieldEmail] = MsgEmailRequired
	case !IsEmail(strings.TrimSpace(email)):
		errs[FieldEmail] = MsgEmailInvalid
	}
}

func checkNewPassword(errs Errors, field, password string) {
	switch {
	case password == "":
		errs[field] = MsgPasswordRequired
	case len([]rune(password)) < common.MinPasswordLength:
		errs[field] = MsgPasswordTooShort
	}
}

func checkConfirm(errs Errors, password, confirm string) {
	switch {
	case confirm == "":
		errs[FieldConfirmPassword] = MsgConfirmRequired
	case password != confirm:
		errs[FieldConfirmPassword] = MsgPasswordsMismatch
	}
}

// SignUp validates the registration form.
func SignUp(name, email, password, confirmPassword string) Errors {
	errs := Errors{}
	if strings.TrimSpace(name) == "" {
		errs[FieldName] = MsgNameRequired
	}
	checkEmail(errs, email)
	checkNewPassword(errs, FieldPassword, password)
	checkConfirm(errs, password, confirmPassword)
	return errs
}

// SignIn validates the sign-in form. The password length is not checked
// here so accounts created under older rules can still sign in.
func SignIn(email, password string) Errors {
	errs := Errors{}
	checkEmail(errs, email)
	if password == "" {
		errs[FieldPassword] = MsgPasswordRequired
	}
	return errs
}

// ForgotPassword validates the reset-link form.
func ForgotPassword(email string) Errors {
	errs := Errors{}
	checkEmail(errs, email)
	return errs
}

// ChangePassword validates the change-password form.
func ChangePassword(oldPassword, newPassword, confirmPassword string) Errors {
	errs := Errors{}
	if oldPassword == "" {
		errs[FieldOldPassword] = MsgOldPasswordRequired
	}
	checkNewPassword(errs, FieldNewPassword, newPassword)
	checkConfirm(errs, newPassword, confirmPassword)
	return errs
}

// ResetPassword validates the form that completes a password reset.
func ResetPassword(code, newPassword, confirmPassword string) Errors {
	errs := Errors{}
	if strings.TrimSpace(code) == "" {
		errs[FieldResetCode] = MsgResetCodeRequired
	}
	checkNewPassword(errs, FieldNewPassword, newPassword)
	checkConfirm(errs, newPassword, confirmPassword)
	return errs
}

// Profile validates the edit-profile form. An empty phone number is allowed.
func Profile(name, phoneNo string) Errors {
	errs := Errors{}
	if strings.TrimSpace(name) == "" {
		errs[FieldName] = MsgNameRequired
	}
	if p := strings.TrimSpace(phoneNo); p != "" && !phoneRe.MatchString(p) {
		errs[FieldPhoneNo] = MsgPhoneInvalid
	}
	return errs
}

// Package services contains the backend's business logic. UserService
// covers accounts, bearer tokens, password resets, profile changes and the
// collaborator search.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/filex"
	"github.com/dmitrijs2005/familyaccount/internal/logging"
	"github.com/dmitrijs2005/familyaccount/internal/server/auth"
	"github.com/dmitrijs2005/familyaccount/internal/server/config"
	"github.com/dmitrijs2005/familyaccount/internal/server/mailer"
	"github.com/dmitrijs2005/familyaccount/internal/server/models"
	"github.com/dmitrijs2005/familyaccount/internal/server/photos"
	"github.com/dmitrijs2005/familyaccount/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/familyaccount/internal/server/revocation"
	"github.com/dmitrijs2005/familyaccount/internal/validation"
)

// AuthResult is what sign-up, sign-in and verify hand back.
type AuthResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	repomanager repomanager.RepositoryManager
	revoked     revocation.Store
	photos      photos.Store
	mailer      mailer.Mailer
	logger      logging.Logger

	jwtSecret     []byte
	tokenTTL      time.Duration
	resetTokenTTL time.Duration
}

func NewUserService(m repomanager.RepositoryManager, revoked revocation.Store, ps photos.Store, ml mailer.Mailer, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		repomanager:   m,
		revoked:       revoked,
		photos:        ps,
		mailer:        ml,
		logger:        logger.With("module", "users"),
		jwtSecret:     []byte(cfg.SecretKey),
		tokenTTL:      cfg.TokenTTL,
		resetTokenTTL: cfg.ResetTokenTTL,
	}
}

// SignUp creates an account and signs it in.
func (s *UserService) SignUp(ctx context.Context, name, email, password, confirmPassword string) (*AuthResult, error) {
	if errs := validation.SignUp(name, email, password, confirmPassword); !errs.OK() {
		return nil, validationError(errs)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, s.internal(ctx, "hash password", err)
	}

	user, err := s.repomanager.Users().Create(ctx, &models.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, errUserExists
		}
		return nil, s.internal(ctx, "create user", err)
	}

	return s.issue(ctx, user)
}

// SignIn checks credentials. Unknown e-mails and wrong passwords fail the
// same way and take about as long.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	if errs := validation.SignIn(email, password); !errs.OK() {
		return nil, validationError(errs)
	}

	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = auth.CheckPassword(dummyHash(), password)
			return nil, errInvalidCredentials
		}
		return nil, s.internal(ctx, "get user", err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, s.internal(ctx, "check password", err)
	}
	if !ok {
		return nil, errInvalidCredentials
	}

	return s.issue(ctx, user)
}

// Authenticate turns a bearer token into its claims, rejecting expired,
// forged and revoked tokens.
func (s *UserService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, errTokenInvalid
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, s.internal(ctx, "check revocation", err)
	}
	if revoked {
		return nil, errTokenRevoked
	}

	cutoff, err := s.revoked.RevokedBefore(ctx, claims.UserID)
	if err != nil {
		return nil, s.internal(ctx, "check revocation", err)
	}
	if claims.Issued().Before(cutoff) {
		return nil, errTokenRevoked
	}

	return claims, nil
}

// Verify confirms the account behind a valid token still exists. The
// presented token is handed back unchanged, so signing out still ends the
// session it belongs to.
func (s *UserService) Verify(ctx context.Context, userID, token string) (*AuthResult, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// SignOut revokes the presented token until it expires.
func (s *UserService) SignOut(ctx context.Context, claims *auth.Claims) error {
	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	if err := s.revoked.Revoke(ctx, claims.ID, expires); err != nil {
		return s.internal(ctx, "revoke token", err)
	}
	return nil
}

// ForgotPassword e-mails a single-use reset code. The outcome is the same
// whether or not the address belongs to an account.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	if errs := validation.ForgotPassword(email); !errs.OK() {
		return validationError(errs)
	}

	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Info(ctx, "password reset for unknown e-mail")
			return nil
		}
		return s.internal(ctx, "get user", err)
	}

	code, err := common.MakeRandHexString(16)
	if err != nil {
		return s.internal(ctx, "generate reset code", err)
	}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
		if err := tx.ResetTokens().DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return tx.ResetTokens().Create(ctx, user.ID, hashResetCode(code), s.resetTokenTTL)
	})
	if err != nil {
		return s.internal(ctx, "store reset code", err)
	}

	msg := mailer.ResetMessage{To: user.Email, Name: user.Name, Token: code, ExpiresIn: s.resetTokenTTL}
	if err := s.mailer.SendPasswordReset(ctx, msg); err != nil {
		// Failing here would tell the caller the account exists.
		s.logger.Error(ctx, "send reset e-mail", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword sets a new password using a code from ForgotPassword. The
// code and any other pending codes of the user are spent, and every token
// issued so far is revoked.
func (s *UserService) ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) error {
	if errs := validation.ResetPassword(code, newPassword, confirmPassword); !errs.OK() {
		return validationError(errs)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return s.internal(ctx, "hash password", err)
	}

	var userID string
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
		t, err := tx.ResetTokens().Find(ctx, hashResetCode(strings.TrimSpace(code)))
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return errResetCodeInvalid
			}
			return err
		}
		if !t.Expires.After(time.Now()) {
			return errResetCodeInvalid
		}

		user, err := tx.Users().GetByID(ctx, t.UserID)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}
		userID = user.ID
		return tx.ResetTokens().DeleteByUser(ctx, user.ID)
	})

	var se *Error
	switch {
	case err == nil:
		return s.endSessions(ctx, userID)
	case errors.As(err, &se):
		return se
	default:
		return s.internal(ctx, "reset password", err)
	}
}

// UpdateProfile changes the display name and phone number.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, phoneNo string) (*models.User, error) {
	if errs := validation.Profile(name, phoneNo); !errs.OK() {
		return nil, validationError(errs)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(name)
	user.PhoneNo = strings.TrimSpace(phoneNo)
	if err := s.repomanager.Users().Update(ctx, user); err != nil {
		return nil, s.internal(ctx, "update user", err)
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one.
// Every token issued before the change is revoked; the caller gets a new
// one for its own session.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) (string, error) {
	if errs := validation.ChangePassword(oldPassword, newPassword, confirmPassword); !errs.OK() {
		return "", validationError(errs)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return "", err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, oldPassword)
	if err != nil {
		return "", s.internal(ctx, "check password", err)
	}
	if !ok {
		return "", errWrongPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return "", s.internal(ctx, "hash password", err)
	}
	user.PasswordHash = hash
	if err := s.repomanager.Users().Update(ctx, user); err != nil {
		return "", s.internal(ctx, "update user", err)
	}

	if err := s.endSessions(ctx, user.ID); err != nil {
		return "", err
	}
	res, err := s.issue(ctx, user)
	if err != nil {
		return "", err
	}
	return res.Token, nil
}

// UploadPhoto stores an image and points the profile at it.
func (s *UserService) UploadPhoto(ctx context.Context, userID string, data []byte) (*models.User, error) {
	if len(data) > common.MaxPhotoSize {
		return nil, errPhotoTooLarge
	}
	contentType := filex.DetectContentType(data)
	if !filex.IsImage(contentType) {
		return nil, errPhotoType
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.photos.Put(ctx, user.ID, contentType, data)
	if err != nil {
		return nil, s.internal(ctx, "store photo", err)
	}

	user.ProfilePhotoURL = url
	if err := s.repomanager.Users().Update(ctx, user); err != nil {
		return nil, s.internal(ctx, "update user", err)
	}
	return user, nil
}

// Search finds other users by name or e-mail. Queries shorter than
// common.MinSearchLength return nothing.
func (s *UserService) Search(ctx context.Context, userID, query string) ([]models.User, error) {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < common.MinSearchLength {
		return []models.User{}, nil
	}

	found, err := s.repomanager.Users().Search(ctx, q, userID)
	if err != nil {
		return nil, s.internal(ctx, "search users", err)
	}
	return found, nil
}

// --- helpers below ---

func (s *UserService) getUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errUserNotFound
		}
		return nil, s.internal(ctx, "get user", err)
	}
	return user, nil
}

func (s *UserService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, _, _, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, s.internal(ctx, "generate token", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// endSessions revokes every token of userID issued until now.
func (s *UserService) endSessions(ctx context.Context, userID string) error {
	now := time.Now()
	if err := s.revoked.RevokeUser(ctx, userID, now, now.Add(s.tokenTTL)); err != nil {
		return s.internal(ctx, "revoke user tokens", err)
	}
	return nil
}

func (s *UserService) internal(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, op, "error", err)
	return errInternal
}

func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

var (
	dummyOnce sync.Once
	dummy     string
)

// dummyHash is compared against when the e-mail is unknown.
func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = auth.HashPassword("familyaccount-timing-equalizer")
	})
	return dummy
}

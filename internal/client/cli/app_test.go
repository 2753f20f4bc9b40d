package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/client/client"
	"github.com/dmitrijs2005/familyaccount/internal/client/config"
	"github.com/dmitrijs2005/familyaccount/internal/client/models"
	"github.com/dmitrijs2005/familyaccount/internal/client/session"
	"github.com/dmitrijs2005/familyaccount/internal/client/tokenstore"
	"github.com/dmitrijs2005/familyaccount/internal/logging"
	"github.com/dmitrijs2005/familyaccount/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ fake backend ------------

type backend struct {
	mu       sync.Mutex
	calls    []string
	user     models.AuthUser
	password string
	token    string
	// photoStatus, when non-zero, fails photo uploads with that status.
	photoStatus int
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	t.Helper()
	b := &backend{
		user:     models.AuthUser{ID: "u1", Name: "Jane Doe", Email: "jane@example.com", CreatedAt: "2026-01-01T00:00:00Z", Role: "owner"},
		password: "secret123",
		token:    "tok-valid",
	}
	srv := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, r.Method+" "+r.URL.Path)

	authed := r.Header.Get("Authorization") == "Bearer "+b.token

	switch r.URL.Path {
	case "/auth/signin":
		var p models.SignInPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		if p.Email != b.user.Email || p.Password != b.password {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Invalid email or password"})
			return
		}
		u := b.user
		writeJSON(w, http.StatusOK, models.AuthResponse{Message: "Welcome back, Jane", Token: b.token, User: &u})
	case "/auth/signup":
		var p models.SignUpPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		u := models.AuthUser{ID: "u2", Name: p.Name, Email: p.Email}
		writeJSON(w, http.StatusCreated, models.AuthResponse{Message: "Account created", Token: "tok-new", User: &u})
	case "/auth/verify":
		if !authed {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Invalid token"})
			return
		}
		u := b.user
		writeJSON(w, http.StatusOK, models.AuthResponse{Message: "OK", Token: b.token, User: &u})
	case "/auth/signout":
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Signed out"})
	case "/auth/reset-password":
		var p models.ResetPasswordPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		if p.Token != "good-code" {
			writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Invalid or expired reset code"})
			return
		}
		b.password = p.NewPassword
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Password has been reset. You can now sign in."})
	case "/users/profile":
		if !authed {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Invalid token"})
			return
		}
		var p models.UpdateProfilePayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		b.user.Name, b.user.PhoneNo = p.Name, p.PhoneNo
		u := b.user
		writeJSON(w, http.StatusOK, models.UpdateProfileResponse{Message: "Profile updated", User: &u})
	case "/users/change-password":
		if !authed {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Invalid token"})
			return
		}
		var p models.ChangePasswordPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		if p.OldPassword != b.password {
			writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Current password is incorrect"})
			return
		}
		b.password, b.token = p.NewPassword, "tok-rotated"
		writeJSON(w, http.StatusOK, models.ChangePasswordResponse{Message: "Password changed successfully", Token: b.token})
	case "/users/profile/photo":
		if b.photoStatus != 0 {
			writeJSON(w, b.photoStatus, models.MessageResponse{Message: "Storage offline"})
			return
		}
		b.user.ProfilePhotoURL = "http://cdn.example/u1.png"
		u := b.user
		writeJSON(w, http.StatusOK, models.UpdateProfileResponse{Message: "Photo updated", User: &u})
	case "/users/search":
		q := strings.ToLower(r.URL.Query().Get("q"))
		var users []models.UserSummary
		for _, u := range []models.UserSummary{{ID: "1", Name: "Alice Brown", Email: "alice.brown@example.com"}, {ID: "2", Name: "Bob Wilson", Email: "bob.wilson@example.com"}} {
			if strings.Contains(strings.ToLower(u.Email), q) || strings.Contains(strings.ToLower(u.Name), q) {
				users = append(users, u)
			}
		}
		writeJSON(w, http.StatusOK, models.SearchUsersResponse{Users: users})
	default:
		writeJSON(w, http.StatusNotFound, models.MessageResponse{Message: "not found"})
	}
}

// ------------ helpers ------------

func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(pws) == 0 {
			return nil, errors.New("no more passwords")
		}
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

type harness struct {
	app    *App
	tokens *tokenstore.MemoryStore
	out    *bytes.Buffer
}

func newHarness(t *testing.T, serverURL string, input ...string) *harness {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerURL = serverURL
	cfg.SearchDebounce = 10 * time.Millisecond

	tokens := tokenstore.NewMemoryStore()
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(input, "\n") + "\n")
	hc := client.NewHTTPClient(serverURL, 2*time.Second, tokens)

	return &harness{
		app:    newApp(cfg, tokens, hc, in, out, logging.NewNop()),
		tokens: tokens,
		out:    out,
	}
}

func (h *harness) token(t *testing.T) string {
	t.Helper()
	tok, err := h.tokens.Get(context.Background())
	require.NoError(t, err)
	return tok
}

func (h *harness) output() string {
	h.app.out.(*syncWriter).mu.Lock()
	defer h.app.out.(*syncWriter).mu.Unlock()
	return h.out.String()
}

// ------------ tests ------------

func TestSignIn_PersistsTokenAndProfile(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL, "jane@example.com")
	stubPasswords(t, "secret123")

	require.NoError(t, h.app.SignIn(context.Background()))

	assert.Equal(t, "tok-valid", h.token(t))
	p, ok := h.app.dir.Get()
	require.True(t, ok)
	assert.Equal(t, session.MapUser(b.user), p)
	assert.Equal(t, session.RouteDashboard, h.app.nav.Route())
	assert.Contains(t, h.output(), "Welcome back, Jane")
	assert.Contains(t, h.output(), "Dashboard")
}

func TestSignIn_ServerRejection(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL, "jane@example.com")
	stubPasswords(t, "wrong-password")

	err := h.app.SignIn(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)

	assert.Empty(t, h.token(t))
	assert.False(t, h.app.isSignedIn())
	assert.Contains(t, h.output(), "Sign in failed")
	assert.Contains(t, h.output(), "Invalid email or password")
}

func TestSignIn_ServerUnreachableUsesFallback(t *testing.T) {
	_, srv := newBackend(t)
	url := srv.URL
	srv.Close()

	h := newHarness(t, url, "jane@example.com")
	stubPasswords(t, "secret123")

	err := h.app.SignIn(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Contains(t, h.output(), "Unable to sign in. Please try again.")
}

func TestSignIn_MalformedEmailBlocksRequest(t *testing.T) {
	for _, email := range []string{"abc", "abc@", "@x.com"} {
		t.Run(email, func(t *testing.T) {
			b, srv := newBackend(t)
			h := newHarness(t, srv.URL, email)
			stubPasswords(t, "secret123")

			err := h.app.SignIn(context.Background())
			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, validation.MsgEmailInvalid, verrs[validation.FieldEmail])
			assert.Empty(t, b.Calls())
			assert.Contains(t, h.output(), validation.MsgEmailInvalid)
		})
	}
}

func TestSignUp_ShortPasswordBlocked(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL, "New User", "new@example.com")
	stubPasswords(t, "abcd123", "abcd123")

	err := h.app.SignUp(context.Background())
	require.Error(t, err)

	assert.Contains(t, h.output(), "Password must be at least 8 characters")
	assert.Empty(t, b.Calls())
	assert.Empty(t, h.token(t))
}

func TestSignUp_SuccessGoesToSignIn(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL, "New User", "new@example.com")
	stubPasswords(t, "abcd1234", "abcd1234")

	require.NoError(t, h.app.SignUp(context.Background()))

	assert.Equal(t, []string{"POST /auth/signup"}, b.Calls())
	assert.Equal(t, "tok-new", h.token(t))
	assert.Equal(t, session.RouteSignIn, h.app.nav.Route())
	assert.Contains(t, h.output(), "Account created")
	_, ok := h.app.dir.Get()
	assert.False(t, ok, "the sign-in screen shows no unchecked profile")
	assert.Empty(t, h.app.status())
}

func TestForgotPassword_InvalidEmail(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL, "")

	err := h.app.ForgotPassword(context.Background())
	require.Error(t, err)
	assert.Contains(t, h.output(), validation.MsgEmailRequired)
	assert.Empty(t, b.Calls())
}

func TestResetPassword_Success(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL, " good-code ")
	stubPasswords(t, "brand-new-pw", "brand-new-pw")

	require.NoError(t, h.app.ResetPassword(context.Background()))

	assert.Equal(t, []string{"POST /auth/reset-password"}, b.Calls())
	assert.Equal(t, "brand-new-pw", b.password)
	assert.Empty(t, h.token(t))
	assert.Equal(t, session.RouteSignIn, h.app.nav.Route())
	assert.Contains(t, h.output(), "Password has been reset. You can now sign in.")
}

func TestResetPassword_BadCode(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL, "stale-code")
	stubPasswords(t, "brand-new-pw", "brand-new-pw")

	err := h.app.ResetPassword(context.Background())
	require.Error(t, err)
	assert.Contains(t, h.output(), "Reset failed")
	assert.Contains(t, h.output(), "Invalid or expired reset code")
}

func TestResetPassword_ValidationBlocksRequest(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL, "")
	stubPasswords(t, "brand-new-pw", "different-pw")

	err := h.app.ResetPassword(context.Background())
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, validation.MsgResetCodeRequired, verrs[validation.FieldResetCode])
	assert.Equal(t, validation.MsgPasswordsMismatch, verrs[validation.FieldConfirmPassword])
	assert.Empty(t, b.Calls())
}

func TestSignOut_ClearsEverything(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))
	h.app.dir.Set(models.Profile{ID: "u1"})

	require.NoError(t, h.app.SignOut(context.Background()))

	assert.Empty(t, h.token(t))
	assert.False(t, h.app.isSignedIn())
	assert.Equal(t, session.RouteSignIn, h.app.nav.Route())
	assert.Contains(t, h.output(), "You have been signed out successfully.")
}

func TestSignOut_ServerDownStillClears(t *testing.T) {
	_, srv := newBackend(t)
	url := srv.URL
	srv.Close()

	h := newHarness(t, url)
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))
	h.app.dir.Set(models.Profile{ID: "u1"})

	require.NoError(t, h.app.SignOut(context.Background()))
	assert.Empty(t, h.token(t))
	assert.False(t, h.app.isSignedIn())
	assert.Contains(t, h.output(), "Logged out")
}

func TestProtectedCommand_ExpiredToken(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	require.NoError(t, h.tokens.Set(context.Background(), "tok-expired"))
	h.app.dir.Set(models.Profile{ID: "u1", Name: "Jane Doe"})

	require.NoError(t, h.app.Profile(context.Background()))

	assert.Equal(t, []string{"GET /auth/verify"}, b.Calls())
	assert.Empty(t, h.token(t))
	assert.False(t, h.app.isSignedIn())
	assert.Equal(t, session.RouteSignIn, h.app.nav.Route())
	assert.Equal(t, 1, strings.Count(h.output(), session.SessionExpiredMessage))
	assert.NotContains(t, h.output(), "Member since")
}

func TestProfile_ShowsVerifiedUser(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))

	require.NoError(t, h.app.Profile(context.Background()))
	assert.Contains(t, h.output(), "jane@example.com")
	assert.Contains(t, h.output(), "Member since")
}

func TestEditProfile_UpdatesDirectory(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL, "Jane Smith", "+1 555 0100")
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))

	require.NoError(t, h.app.EditProfile(context.Background()))

	p, ok := h.app.dir.Get()
	require.True(t, ok)
	assert.Equal(t, "Jane Smith", p.Name)
	assert.Equal(t, "+1 555 0100", p.PhoneNo)
	assert.Contains(t, h.output(), "Profile updated")
}

func TestChangePassword_MismatchBlocked(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))
	stubPasswords(t, "secret123", "newsecret1", "newsecret2")

	err := h.app.ChangePassword(context.Background())
	require.Error(t, err)
	assert.Contains(t, h.output(), validation.MsgPasswordsMismatch)
	assert.Equal(t, []string{"GET /auth/verify"}, b.Calls())
}

func TestChangePassword_KeepsSessionWithRotatedToken(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))
	stubPasswords(t, "secret123", "newsecret1", "newsecret1")

	require.NoError(t, h.app.ChangePassword(context.Background()))
	assert.Equal(t, []string{"GET /auth/verify", "PUT /users/change-password"}, b.Calls())
	assert.Equal(t, "tok-rotated", h.token(t))
	assert.Contains(t, h.output(), "Password changed successfully")

	require.Equal(t, session.StateAuthenticated, h.app.protected.Check(context.Background()))
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestPhoto_UploadsAndSyncs(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))

	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	require.NoError(t, h.app.Photo(context.Background(), path))
	p, _ := h.app.dir.Get()
	assert.Equal(t, "http://cdn.example/u1.png", p.ProfilePhotoURL)
}

func TestPhoto_RollsBackOnFailure(t *testing.T) {
	b, srv := newBackend(t)
	b.photoStatus = http.StatusServiceUnavailable
	b.user.ProfilePhotoURL = "http://cdn.example/old.png"
	h := newHarness(t, srv.URL)
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))

	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	require.Error(t, h.app.Photo(context.Background(), path))
	p, _ := h.app.dir.Get()
	assert.Equal(t, "http://cdn.example/old.png", p.ProfilePhotoURL)
	assert.Contains(t, h.output(), "Storage offline")
}

func TestPhoto_RejectsNonImage(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	require.Error(t, h.app.Photo(context.Background(), path))
	assert.Equal(t, []string{"GET /auth/verify"}, b.Calls())
}

func TestSearch_CloseDropsPendingLookup(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL, "bo", "bob")
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))
	h.app.config.SearchDebounce = time.Hour

	require.NoError(t, h.app.Search(context.Background()))

	assert.Equal(t, []string{"GET /auth/verify"}, b.Calls())
}

func TestSearch_PrintsDebouncedMatches(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))

	pr, pw := io.Pipe()
	h.app.reader = bufio.NewReader(pr)

	done := make(chan error, 1)
	go func() { done <- h.app.Search(context.Background()) }()

	_, err := io.WriteString(pw, "bo\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(h.output(), "Keep typing")
	}, time.Second, 5*time.Millisecond)

	_, err = io.WriteString(pw, "bob\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(h.output(), "Bob Wilson <bob.wilson@example.com>")
	}, time.Second, 5*time.Millisecond)

	_, err = io.WriteString(pw, "\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(h.output(), "(cleared)")
	}, time.Second, 5*time.Millisecond)

	_, err = io.WriteString(pw, "done\n")
	require.NoError(t, err)
	require.NoError(t, <-done)

	assert.Equal(t, 1, strings.Count(strings.Join(b.Calls(), ","), "GET /users/search"))
	assert.NotContains(t, h.output(), "Alice")
}

func TestRun_ResumesStoredSession(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL, "whoami", "exit")
	require.NoError(t, h.tokens.Set(context.Background(), "tok-valid"))

	h.app.Run(context.Background())

	out := h.output()
	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, "Jane Doe <jane@example.com>")
	assert.Contains(t, out, "Bye!")
}

func TestRun_StaleTokenShowsSignInSilently(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL, "exit")
	require.NoError(t, h.tokens.Set(context.Background(), "tok-stale"))

	h.app.Run(context.Background())

	assert.Empty(t, h.token(t))
	assert.Contains(t, h.output(), "Sign in to continue")
	assert.NotContains(t, h.output(), session.SessionExpiredMessage)
}

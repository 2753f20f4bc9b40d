// Package httpapi exposes the backend's REST interface: JSON bodies,
// {message} errors and bearer authentication.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/logging"
	"github.com/dmitrijs2005/familyaccount/internal/server/auth"
	"github.com/dmitrijs2005/familyaccount/internal/server/models"
	"github.com/dmitrijs2005/familyaccount/internal/server/services"
	"github.com/gorilla/mux"
)

// UserService is the business logic behind the routes.
type UserService interface {
	SignUp(ctx context.Context, name, email, password, confirmPassword string) (*services.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*services.AuthResult, error)
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	Verify(ctx context.Context, userID, token string) (*services.AuthResult, error)
	SignOut(ctx context.Context, claims *auth.Claims) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) error
	UpdateProfile(ctx context.Context, userID, name, phoneNo string) (*models.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) (string, error)
	UploadPhoto(ctx context.Context, userID string, data []byte) (*models.User, error)
	Search(ctx context.Context, userID, query string) ([]models.User, error)
}

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	users   UserService
	logger  logging.Logger
	photos  http.Handler
	limiter *ipLimiter
}

type Option func(*Server)

// WithPhotoHandler serves locally stored photos under /photos/.
func WithPhotoHandler(h http.Handler) Option {
	return func(s *Server) { s.photos = h }
}

// WithAuthRateLimit limits each client address to perSecond requests on
// the /auth routes, allowing bursts of burst. perSecond <= 0 disables it.
func WithAuthRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		if perSecond <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = newIPLimiter(perSecond, burst)
	}
}

func NewServer(address string, l logging.Logger, us UserService, opts ...Option) *Server {
	s := &Server{
		address: address,
		users:   us,
		logger:  l.With("module", "http_server"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeMessage(r.Context(), w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeMessage(r.Context(), w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	public := r.PathPrefix("/auth").Subrouter()
	public.Use(s.rateLimit)
	public.HandleFunc("/signup", s.handleSignUp).Methods(http.MethodPost)
	public.HandleFunc("/signin", s.handleSignIn).Methods(http.MethodPost)
	public.HandleFunc("/forgot-password", s.handleForgotPassword).Methods(http.MethodPost)
	public.HandleFunc("/reset-password", s.handleResetPassword).Methods(http.MethodPost)
	public.Handle("/signout", s.requireAuth(http.HandlerFunc(s.handleSignOut))).Methods(http.MethodPost)
	public.Handle("/verify", s.requireAuth(http.HandlerFunc(s.handleVerify))).Methods(http.MethodGet)

	users := r.PathPrefix("/users").Subrouter()
	users.Use(s.requireAuth)
	users.HandleFunc("/profile", s.handleUpdateProfile).Methods(http.MethodPut)
	users.HandleFunc("/change-password", s.handleChangePassword).Methods(http.MethodPut)
	users.HandleFunc("/profile/photo", s.handleUploadPhoto).Methods(http.MethodPost)
	users.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)

	if s.photos != nil {
		r.PathPrefix("/photos/").Handler(s.photos).Methods(http.MethodGet, http.MethodHead)
	}

	return s.logRequests(r)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}

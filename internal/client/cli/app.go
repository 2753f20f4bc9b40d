package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/familyaccount/internal/client/client"
	"github.com/dmitrijs2005/familyaccount/internal/client/config"
	"github.com/dmitrijs2005/familyaccount/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/familyaccount/internal/client/services"
	"github.com/dmitrijs2005/familyaccount/internal/client/session"
	"github.com/dmitrijs2005/familyaccount/internal/client/tokenstore"
	"github.com/dmitrijs2005/familyaccount/internal/logging"
)

type App struct {
	config *config.Config
	db     *sql.DB
	logger logging.Logger

	tokens tokenstore.Store
	auth   services.AuthService
	users  services.UserService
	dir    *session.Directory

	protected *session.Gate
	signIn    *session.Gate

	nav      *navigator
	notifier *terminalNotifier
	st       styles

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database (unless the config asks for an ephemeral
// session) and wires the services against the configured backend.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	var (
		db     *sql.DB
		tokens tokenstore.Store
	)
	if c.Ephemeral {
		tokens = tokenstore.NewMemoryStore()
	} else {
		var err error
		db, err = client.InitDatabase(ctx, c.DatabasePath)
		if err != nil {
			logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
			return nil, err
		}
		tokens = tokenstore.NewSQLiteStore(metadata.NewSQLiteRepository(db))
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, tokens, client.WithLogger(logger.With("module", "http")))

	a := newApp(c, tokens, apiClient, os.Stdin, os.Stdout, logger)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, tokens tokenstore.Store, apiClient client.Client, in io.Reader, out io.Writer, logger logging.Logger) *App {
	w := &syncWriter{w: out}
	st := newStyles(out)

	a := &App{
		config:   c,
		logger:   logger,
		tokens:   tokens,
		auth:     services.NewAuthService(apiClient, tokens, logger),
		users:    services.NewUserService(apiClient, tokens),
		dir:      session.NewDirectory(),
		notifier: &terminalNotifier{w: w, st: st},
		st:       st,
		reader:   bufio.NewReader(in),
		out:      w,
	}
	a.nav = &navigator{route: session.RouteSignIn, render: a.render}
	a.protected = session.NewGate(session.KindProtected, a.auth, tokens, a.dir, a.nav, a.notifier, logger)
	a.signIn = session.NewGate(session.KindSignIn, a.auth, tokens, a.dir, a.nav, a.notifier, logger)
	return a
}

// Run checks for a stored session, then serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, a.st.title.Render("Family Account")+a.st.muted.Render(" (type 'help' for commands)"))

	if a.signIn.Check(ctx) != session.StateAuthenticated {
		a.render(session.RouteSignIn)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// isSignedIn reports whether the current screen belongs to the signed-in
// area.
func (a *App) isSignedIn() bool {
	return a.nav.Route() != session.RouteSignIn
}

func (a *App) status() string {
	if !a.isSignedIn() {
		return ""
	}
	if p, ok := a.dir.Get(); ok {
		return fmt.Sprintf("(%s)", p.Email)
	}
	return ""
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) notify(kind session.NoticeKind, title, message string) {
	a.notifier.Notify(session.Notice{Kind: kind, Title: title, Message: message})
}

// render draws the screen the navigator switched to.
func (a *App) render(route session.Route) {
	switch route {
	case session.RouteDashboard:
		a.renderDashboard()
	case session.RouteSignIn:
		a.println(a.st.muted.Render("Sign in to continue: signin, signup, forgot or reset-password"))
	}
}

// protectedCall mounts the protected gate and runs fn only when the session
// is confirmed. On rejection the gate has already navigated and notified.
func (a *App) protectedCall(ctx context.Context, fn func(ctx context.Context) error) error {
	if a.protected.Check(ctx) != session.StateAuthenticated {
		return nil
	}
	return fn(ctx)
}

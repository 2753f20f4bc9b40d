package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/familyaccount/internal/client/models"
	"github.com/dmitrijs2005/familyaccount/internal/client/tokenstore"
	"github.com/dmitrijs2005/familyaccount/internal/logging"
)

type State int

const (
	StateChecking State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Resolved reports whether the check has finished.
func (s State) Resolved() bool {
	return s != StateChecking
}

type event int

const (
	eventNoToken event = iota
	eventVerified
	eventRejected
)

// transition is the only place gate states change. Resolved states absorb
// every later event.
func transition(s State, e event) State {
	if s != StateChecking {
		return s
	}
	switch e {
	case eventVerified:
		return StateAuthenticated
	case eventNoToken, eventRejected:
		return StateUnauthenticated
	}
	return s
}

type Kind int

const (
	// KindProtected guards the signed-in area. Any failure signs the user out
	// and sends them to the sign-in screen with a notice.
	KindProtected Kind = iota
	// KindSignIn runs on the sign-in screen and skips straight to the
	// dashboard when the stored credential is still valid.
	KindSignIn
)

type Route string

const (
	RouteSignIn    Route = "signin"
	RouteDashboard Route = "dashboard"
)

const (
	SessionExpiredTitle   = "Session expired"
	SessionExpiredMessage = "Session expired — please sign in again"
)

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// Navigator replaces the current screen.
type Navigator interface {
	Replace(route Route)
}

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(n Notice)
}

// Verifier checks the stored credential with the backend. It must not
// write the store: the gate persists the answer only while still mounted.
type Verifier interface {
	CheckSession(ctx context.Context) (*models.AuthResponse, error)
}

// Gate runs the session check. One Gate may be mounted any number of times;
// every Mount is independent.
type Gate struct {
	kind     Kind
	verifier Verifier
	tokens   tokenstore.Store
	dir      *Directory
	nav      Navigator
	notifier Notifier
	logger   logging.Logger
}

func NewGate(kind Kind, verifier Verifier, tokens tokenstore.Store, dir *Directory, nav Navigator, notifier Notifier, logger logging.Logger) *Gate {
	return &Gate{
		kind:     kind,
		verifier: verifier,
		tokens:   tokens,
		dir:      dir,
		nav:      nav,
		notifier: notifier,
		logger:   logger.With("module", "gate"),
	}
}

// Mount is one run of the check, tied to the lifetime of a screen.
type Mount struct {
	gate   *Gate
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	state    State
	relevant bool
}

// Mount starts the check in the background and returns immediately in
// StateChecking.
func (g *Gate) Mount(ctx context.Context) *Mount {
	ctx, cancel := context.WithCancel(ctx)
	m := &Mount{
		gate:     g,
		cancel:   cancel,
		done:     make(chan struct{}),
		state:    StateChecking,
		relevant: true,
	}
	go m.run(ctx)
	return m
}

// Check mounts the gate and waits for it to resolve.
func (g *Gate) Check(ctx context.Context) State {
	m := g.Mount(ctx)
	defer m.Unmount()
	return m.Wait()
}

func (m *Mount) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Wait blocks until the check finishes and returns the final state. After an
// early Unmount the state stays StateChecking.
func (m *Mount) Wait() State {
	<-m.done
	return m.State()
}

// Unmount marks the mount as no longer relevant. Once it returns, a result
// still in flight causes no side effects.
func (m *Mount) Unmount() {
	m.mu.Lock()
	m.relevant = false
	m.mu.Unlock()
	m.cancel()
}

func (m *Mount) run(ctx context.Context) {
	defer close(m.done)
	g := m.gate

	token, err := g.tokens.Get(ctx)
	if err != nil {
		g.logger.Warn(ctx, "token read failed", "error", err)
		m.resolve(ctx, eventRejected, nil)
		return
	}

	if token == "" {
		if g.kind == KindSignIn {
			m.resolve(ctx, eventNoToken, nil)
			return
		}
		m.resolve(ctx, eventRejected, nil)
		return
	}

	resp, err := g.verifier.CheckSession(ctx)
	if err != nil {
		g.logger.Info(ctx, "session rejected", "error", err)
		m.resolve(ctx, eventRejected, nil)
		return
	}
	m.resolve(ctx, eventVerified, resp)
}

// resolve applies the outcome under the mount lock so Unmount cannot
// interleave with the side effects.
func (m *Mount) resolve(ctx context.Context, e event, resp *models.AuthResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.relevant {
		m.gate.logger.Debug(ctx, "result discarded after unmount")
		return
	}

	m.state = transition(m.state, e)
	g := m.gate

	switch e {
	case eventVerified:
		if resp.Token != "" {
			if err := g.tokens.Set(context.WithoutCancel(ctx), resp.Token); err != nil {
				g.logger.Error(ctx, "token persist failed", "error", err)
			}
		}
		g.dir.Sync(resp.User)
		if g.kind == KindSignIn {
			g.nav.Replace(RouteDashboard)
		}

	case eventRejected:
		// The mount context may already be cancelled by the caller's
		// deadline; clearing must still happen.
		if err := g.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
			g.logger.Error(ctx, "token clear failed", "error", err)
		}
		g.dir.Clear()
		if g.kind == KindProtected {
			g.nav.Replace(RouteSignIn)
			g.notifier.Notify(Notice{Kind: NoticeError, Title: SessionExpiredTitle, Message: SessionExpiredMessage})
		}

	case eventNoToken:
		g.dir.Clear()
	}
}

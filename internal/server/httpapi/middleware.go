package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/server/auth"
	"golang.org/x/time/rate"
)

type ctxKey string

const (
	claimsKey ctxKey = "claims"
	tokenKey  ctxKey = "token"
)

func claimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey).(*auth.Claims)
	return c
}

func tokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}

// requireAuth rejects requests without a valid, unrevoked bearer token and
// stores the token and its claims in the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get(common.AuthorizationHeader)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			s.writeError(ctx, w, errMissingToken)
			return
		}

		claims, err := s.users.Authenticate(ctx, token)
		if err != nil {
			s.writeError(ctx, w, err)
			return
		}

		ctx = context.WithValue(ctx, claimsKey, claims)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ipLimiter hands out one token bucket per client address. Buckets idle for
// longer than idleTTL are swept.
type ipLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(perSecond float64, burst int) *ipLimiter {
	return &ipLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
		clients: map[string]*client{},
	}
}

func (l *ipLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > time.Minute {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > l.idleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.allow(clientIP(r)) {
			s.writeMessage(r.Context(), w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs one line per request and turns panics into a 500.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(ctx, "panic", "path", r.URL.Path, "panic", p)
				s.writeMessage(ctx, rec, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			s.logger.Info(ctx, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start).String())
		}()

		next.ServeHTTP(rec, r)
	})
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/familyaccount/internal/client/models"
	"github.com/dmitrijs2005/familyaccount/internal/debounce"
	"github.com/dmitrijs2005/familyaccount/internal/logging"
)

// SearchResult is delivered to the Searcher callback once per settled query.
type SearchResult struct {
	Query string
	Users []models.UserSummary
	Err   error
}

// Searcher drives the collaborator lookup box: input is debounced, short
// queries never reach the backend, and clearing the input empties the result
// list at once.
type Searcher struct {
	users     UserService
	minLength int
	debouncer *debounce.Debouncer
	onResult  func(SearchResult)
	logger    logging.Logger
}

func NewSearcher(users UserService, delay time.Duration, minLength int, onResult func(SearchResult), logger logging.Logger) *Searcher {
	return &Searcher{
		users:     users,
		minLength: minLength,
		debouncer: debounce.New(delay),
		onResult:  onResult,
		logger:    logger.With("module", "search"),
	}
}

// Input feeds the current contents of the search box.
func (s *Searcher) Input(text string) {
	query := strings.TrimSpace(text)
	if query == "" {
		s.debouncer.Cancel()
		s.onResult(SearchResult{})
		return
	}

	s.debouncer.Trigger(func(ctx context.Context) {
		if len([]rune(query)) < s.minLength {
			s.onResult(SearchResult{Query: query})
			return
		}

		users, err := s.users.SearchUsers(ctx, query)
		if ctx.Err() != nil {
			s.logger.Debug(ctx, "stale search result dropped", "query", query)
			return
		}
		s.onResult(SearchResult{Query: query, Users: users, Err: err})
	})
}

// Close discards any pending lookup; later lookups never run.
func (s *Searcher) Close() {
	s.debouncer.Stop()
}

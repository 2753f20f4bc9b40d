package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/familyaccount/internal/client/client"
	"github.com/dmitrijs2005/familyaccount/internal/client/services"
	"github.com/dmitrijs2005/familyaccount/internal/client/session"
)

// searchDone leaves the collaborator search prompt.
const searchDone = "done"

// Search opens the collaborator lookup. Every line typed replaces the search
// box contents; results arrive after the debounce delay.
func (a *App) Search(ctx context.Context) error {
	return a.protectedCall(ctx, func(ctx context.Context) error {
		s := services.NewSearcher(a.users, a.config.SearchDebounce, a.config.SearchMinLength, a.printSearchResult, a.logger)
		defer s.Close()

		a.println(a.st.title.Render("Find collaborators"))
		a.println(a.st.muted.Render(fmt.Sprintf("Type a name or email (at least %d characters); '%s' to close.", a.config.SearchMinLength, searchDone)))

		for {
			line, err := a.reader.ReadString('\n')
			text := strings.TrimRight(line, "\r\n")
			if strings.TrimSpace(text) == searchDone {
				return nil
			}
			if text != "" || err == nil {
				s.Input(text)
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	})
}

func (a *App) printSearchResult(r services.SearchResult) {
	switch {
	case r.Query == "":
		a.println(a.st.muted.Render("(cleared)"))
	case r.Err != nil:
		a.notify(session.NoticeError, "Search failed", client.Message(r.Err, "Unable to search users. Please try again."))
	case len([]rune(r.Query)) < a.config.SearchMinLength:
		a.println(a.st.muted.Render(fmt.Sprintf("Keep typing: at least %d characters", a.config.SearchMinLength)))
	case len(r.Users) == 0:
		a.println(a.st.muted.Render(fmt.Sprintf("No users match %q", r.Query)))
	default:
		for _, u := range r.Users {
			if u.Name != "" {
				fmt.Fprintf(a.out, "  %s <%s>\n", u.Name, u.Email)
			} else {
				fmt.Fprintf(a.out, "  %s\n", u.Email)
			}
		}
	}
}

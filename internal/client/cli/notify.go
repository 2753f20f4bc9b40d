package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/familyaccount/internal/client/session"
)

// syncWriter serialises writes coming from the REPL and from background
// work such as the gate and the debounced search.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	info    lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	field   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#6366F1")),
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		info:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		err:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		field:   r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	}
}

// terminalNotifier prints notices as a coloured title followed by the text.
type terminalNotifier struct {
	w  io.Writer
	st styles
}

func (n *terminalNotifier) Notify(no session.Notice) {
	style := n.st.info
	switch no.Kind {
	case session.NoticeSuccess:
		style = n.st.success
	case session.NoticeError:
		style = n.st.err
	}
	if no.Title != "" {
		fmt.Fprintf(n.w, "%s %s\n", style.Render("["+no.Title+"]"), no.Message)
		return
	}
	fmt.Fprintln(n.w, style.Render(no.Message))
}

// navigator tracks the current screen and renders it on every change.
type navigator struct {
	mu     sync.Mutex
	route  session.Route
	render func(session.Route)
}

func (n *navigator) Replace(route session.Route) {
	n.mu.Lock()
	n.route = route
	render := n.render
	n.mu.Unlock()
	if render != nil {
		render(route)
	}
}

func (n *navigator) Route() session.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}

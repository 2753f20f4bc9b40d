package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Photo(ctx context.Context, path string) error
	Search(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	SignOut(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: signin, signup, forgot, reset-password, help, exit"
	helpSignedIn  = "Available commands: dashboard, profile, edit-profile, change-password, photo <path>, search, whoami, signout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the client.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Signed-out commands: signin, signup, forgot, reset-password, help, exit.
// Signed-in commands: dashboard, profile, edit-profile, change-password,
// photo <path>, search, whoami, signout, help, exit.
//
// Errors returned by command handlers are not fatal; handlers report them to
// the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "fa%s> ", prefixed(statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "Bye!")
			return
		}
		if cmd == "help" {
			if a.isSignedIn() {
				fmt.Fprintln(w, helpSignedIn)
			} else {
				fmt.Fprintln(w, helpSignedOut)
			}
			continue
		}

		dispatch(ctx, a, cmd, args, w)
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) {
	if a.isSignedIn() {
		switch cmd {
		case "dashboard":
			_ = a.Dashboard(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "edit-profile":
			_ = a.EditProfile(ctx)
		case "change-password":
			_ = a.ChangePassword(ctx)
		case "photo":
			_ = a.Photo(ctx, strings.Join(args, " "))
		case "search":
			_ = a.Search(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "signout", "logout":
			_ = a.SignOut(ctx)
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
		return
	}

	switch cmd {
	case "signin", "login":
		_ = a.SignIn(ctx)
	case "signup", "register":
		_ = a.SignUp(ctx)
	case "forgot":
		_ = a.ForgotPassword(ctx)
	case "reset-password", "reset":
		_ = a.ResetPassword(ctx)
	default:
		fmt.Fprintln(w, "Unknown command:", cmd)
	}
}

func prefixed(status string) string {
	if status == "" {
		return ""
	}
	return " " + status
}

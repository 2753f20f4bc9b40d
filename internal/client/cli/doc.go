// Package cli provides the interactive Family Account terminal client.
//
// It wires configuration, the local credential store, the HTTP client and
// services, the user directory and the two session gates, then serves a REPL.
// Each command stands in for a screen of the app: signin, signup, forgot and
// reset-password while signed out; dashboard, profile, edit-profile, change-password, photo,
// search and signout while signed in.
//
// Every signed-in command mounts the protected gate first, so an expired
// credential sends the user back to sign-in with a notice before the command
// runs. On start the sign-in gate skips straight to the dashboard when the
// stored credential is still valid.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

// Package cli provides the interactive portalcli terminal client.
//
// It wires configuration, the local token store, the Portal API client,
// and an interactive REPL gated behind session verification. Typical
// flow: run the UI gate against the stored token, reveal the
// authenticated shell or fall back to the login prompt, then execute
// user commands.
//
// Key features:
//   - Login / Register / Logout against the remote Portal API
//   - Session restore on start (token verified before anything is shown)
//   - Photo upload with local validation
//   - Admin database viewer: users, locations, arbitrary tables
//   - Admin actions (promote/demote, activate/deactivate, delete)
//     behind an allow-list and a double-submit rate gate
//
// The REPL is started via App.Run(ctx), which blocks until the user
// exits.
package cli

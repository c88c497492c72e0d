// Package cli provides the interactive deskctl command-line client.
//
// It wires configuration, the local cache, the API client and the form
// session into a REPL. Startup authenticates with an API token, taken from
// the config, from credentials saved on this machine or from a prompt, and
// starts a background connectivity watcher. While the server is
// unreachable documents open from the cache and actions are refused.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli

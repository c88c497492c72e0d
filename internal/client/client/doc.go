// Package client is the typed face of the server API used by the forms.
//
// # Overview
//
// The package provides:
//  1. The Client interface: one method per server procedure the forms call,
//     each returning a typed result or an error.
//  2. FrappeClient, the implementation over an rpc.Gateway. It decodes every
//     payload with the convention its procedure uses (success flag or status
//     string) and never lets an untyped payload escape.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations, NewRepositories)
//     for the CLI cache, an SQLite database with embedded goose migrations.
//
// # Error Handling
//
// Transport failures keep their *rpc.TransportError and are additionally
// tagged with ErrUnavailable or ErrUnauthorized where that applies, so
// callers can use errors.Is for coarse decisions and errors.As for detail.
// Procedures that report failure in their payload return *rpc.ApplicationError.
package client

// Package snapshots caches the last version of every document fetched from
// the server, so that a form can still be shown when the site is down.
//
// Entries are keyed by (doctype, name) and replaced wholesale on every
// successful fetch; nothing in the cache is ever sent back to the server.
package snapshots

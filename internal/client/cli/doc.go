// Package cli implements the interactive dectrack shell: a REPL over the
// cached query facade, with session restore on startup and a background
// watcher that tracks server reachability.
package cli

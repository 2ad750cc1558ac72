// Package cli implements the yoas command tree: serve (foreground API
// server), launch (detached server with log capture), and dump (database
// export).
package cli

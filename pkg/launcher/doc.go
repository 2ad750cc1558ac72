// Package launcher starts the YOAS API server as a detached process with
// durable output capture.
//
// Each launch creates the configured log directory if needed, derives a log
// file name from the local wall-clock time (second resolution, numeric UTC
// offset suffix), and starts the server in its own session with stdout and
// stderr appended to that file. The launcher does not supervise the server:
// success means the detached start was requested, nothing more. Stopping the
// server is an external operational action.
package launcher

// Package errors provides structured error types shared across YOAS
// components.
//
// A StructuredError pairs a stable machine-readable code with a human-readable
// message and an optional wrapped cause, so callers can branch on the code
// (via Code or HasCode) while logs keep the full chain through Unwrap.
package errors

// Package dump exports the ban database to files in CSV, JSON, or SQLite
// format, with caller-selected columns and row ordering. It backs both the
// GET /dump API endpoint and the yoas dump CLI command.
package dump

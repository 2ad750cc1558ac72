// Package store persists the YOAS ban database: banned users and the spam
// messages attributed to them, backed by a single SQLite file that lives in
// the same folder as the launch logs.
package store

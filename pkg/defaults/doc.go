// Package defaults centralizes timeout constants used across YOAS
// components so tuning happens in one place.
package defaults

// Package bans implements the YOAS ban-list API handlers: recording and
// removing bans, looking up users and spam messages, and serving database
// dumps. The route map mounts the API at the configured prefix, at
// <prefix>/latest, and at <prefix>/v1, all serving the same v1 handlers.
package bans

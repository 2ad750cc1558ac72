package bans

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/yoas/yoas/pkg/dump"
	"github.com/yoas/yoas/pkg/serializer"
	"github.com/yoas/yoas/pkg/store"
)

// Service implements the ban-list API handlers.
type Service struct {
	store  *store.Store
	dumper *dump.Dumper

	// key authorizes mutating endpoints via the access_key query parameter.
	key string

	// apiPrefix is the mount point of the API, e.g. /api.
	apiPrefix string

	// mainAddress is the optional public address advertised in the
	// welcome text.
	mainAddress string

	// workDir is where dump files are produced before being served.
	workDir string
}

// Config holds the service dependencies and settings.
type Config struct {
	Store       *store.Store
	Dumper      *dump.Dumper
	Key         string
	APIPrefix   string
	MainAddress string
	WorkDir     string
}

// NewService creates the ban-list API service.
func NewService(cfg Config) *Service {
	return &Service{
		store:       cfg.Store,
		dumper:      cfg.Dumper,
		key:         cfg.Key,
		apiPrefix:   cfg.APIPrefix,
		mainAddress: cfg.MainAddress,
		workDir:     cfg.WorkDir,
	}
}

// Routes returns the full route map. The API is mounted three times, at the
// bare prefix, <prefix>/latest, and <prefix>/v1, all serving the same
// handlers.
func (s *Service) Routes() map[string]http.HandlerFunc {
	routes := map[string]http.HandlerFunc{
		"/": s.HandleRoot,
	}

	for _, mount := range []string{s.apiPrefix, s.apiPrefix + "/latest", s.apiPrefix + "/v1"} {
		routes[mount] = s.HandleWelcome
		routes[mount+"/user"] = s.HandleUser
		routes[mount+"/message"] = s.HandleMessage
		routes[mount+"/dump"] = s.HandleDump
	}

	return routes
}

// HandleRoot serves GET / with a pointer at the API mount. Registered on "/",
// it also catches every path no other route claims; those get a 404.
func (s *Service) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	serializer.RespondJSON(w, http.StatusOK, WelcomeResponse{
		WelcomeText: fmt.Sprintf(
			"This is the YOAS (Your Own Anti-Spam System) API. Check %s for more info.",
			s.apiPrefix),
	})
}

// HandleWelcome serves GET <prefix> with the API welcome text.
func (s *Service) HandleWelcome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	var b strings.Builder
	b.WriteString("This is YOAS (Your Own Anti-Spam System) API.")
	if s.mainAddress != "" {
		fmt.Fprintf(&b, " Main address: %s.", s.mainAddress)
	}
	b.WriteString(" It is something like a copy of CAS API to have your own" +
		" database of bans if you need it for some reason." +
		" More info about CAS and CAS API can be found here: https://cas.chat")

	serializer.RespondJSON(w, http.StatusOK, WelcomeResponse{WelcomeText: b.String()})
}

// authorized reports whether the request carries the configured access key.
func (s *Service) authorized(r *http.Request) bool {
	got := r.URL.Query().Get("access_key")
	return subtle.ConstantTimeCompare([]byte(got), []byte(s.key)) == 1
}

// writeError writes the original API error contract, {"error": "..."}.
func writeError(w http.ResponseWriter, status int, message string) {
	serializer.RespondJSON(w, status, ErrorResponse{Error: message})
}

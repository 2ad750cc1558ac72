package bans

import (
	"log/slog"
	"net/http"

	"github.com/yoas/yoas/pkg/serializer"
	"github.com/yoas/yoas/pkg/store"
)

// HandleMessage serves GET /message, reporting whether the given text is a
// known spam message. The lookup runs on the normalized text, matching what
// was stored.
func (s *Service) HandleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	text := r.URL.Query().Get("message_text")
	if text == "" {
		writeError(w, http.StatusBadRequest, "message_text is required.")
		return
	}

	ctx, cancel := s.queryContext(r)
	defer cancel()

	found, err := s.store.HasMessage(ctx, store.NormalizeText(text))
	if err != nil {
		slog.Error("failed to look up message", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusOK
	if !found {
		status = http.StatusNotFound
	}

	serializer.RespondJSON(w, status, MessageFoundResponse{Found: found})
}

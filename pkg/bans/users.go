package bans

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yoas/yoas/pkg/defaults"
	"github.com/yoas/yoas/pkg/errors"
	"github.com/yoas/yoas/pkg/serializer"
	"github.com/yoas/yoas/pkg/store"
)

// createUserRequest is the POST /user body.
type createUserRequest struct {
	UserID         int64   `json:"user_id"`
	BanReason      *string `json:"ban_reason"`
	AdditionalInfo *string `json:"additional_info"`
	Message        string  `json:"message"`
}

// HandleUser dispatches /user by method: POST records a ban, DELETE removes
// one, GET looks one up.
func (s *Service) HandleUser(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createUser(w, r)
	case http.MethodDelete:
		s.deleteUser(w, r)
	case http.MethodGet:
		s.getUser(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	}
}

func (s *Service) createUser(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeError(w, http.StatusForbidden, "Forbidden: invalid access key.")
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.UserID == 0 || req.Message == "" {
		writeError(w, http.StatusBadRequest, "user_id and message are required.")
		return
	}

	ctx, cancel := s.queryContext(r)
	defer cancel()

	u := store.User{
		UserID:         req.UserID,
		BanReason:      req.BanReason,
		AdditionalInfo: req.AdditionalInfo,
	}
	text := store.NormalizeText(req.Message)

	created, msg, err := s.store.CreateUser(ctx, u, text)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeAlreadyExists) {
			writeError(w, http.StatusBadRequest, "This User_ID is already in database.")
			return
		}
		slog.Error("failed to record ban", "user_id", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.Info("ban recorded", "user_id", created.UserID)
	serializer.RespondJSON(w, http.StatusCreated, newUserResponse(created, msg))
}

func (s *Service) deleteUser(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeError(w, http.StatusForbidden, "Forbidden: invalid access key.")
		return
	}

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := s.queryContext(r)
	defer cancel()

	u, msgs, err := s.store.DeleteUser(ctx, userID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		slog.Error("failed to remove ban", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.Info("ban removed", "user_id", userID)
	serializer.RespondJSON(w, http.StatusOK, UserFoundResponse{
		Found: true,
		User:  newUserMessagesResponse(u, msgs),
	})
}

func (s *Service) getUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := s.queryContext(r)
	defer cancel()

	u, msgs, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			serializer.RespondJSON(w, http.StatusNotFound, UserFoundResponse{Found: false})
			return
		}
		slog.Error("failed to look up user", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	serializer.RespondJSON(w, http.StatusOK, UserFoundResponse{
		Found: true,
		User:  newUserMessagesResponse(u, msgs),
	})
}

// userIDParam parses the required user_id query parameter, writing a 400 on
// failure.
func userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "user_id is required.")
		return 0, false
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id must be an integer.")
		return 0, false
	}

	return userID, true
}

func (s *Service) queryContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), defaults.StoreQueryTimeout)
}

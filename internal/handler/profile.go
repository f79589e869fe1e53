package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/auth"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/service"
)

// ProfileHandler serves public profile reads and the authenticated
// profile update.
type ProfileHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

func NewProfileHandler(svc *service.AuthService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, logger: logger}
}

// HandleGetUser returns the profile document for any user ID. Public —
// profiles are the community-facing side of an account.
//
// HTTP: GET /api/users/{id}
func (h *ProfileHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, apperror.ValidationFailed("id", "user id is required"))
		return
	}

	profile, err := h.svc.GetUserData(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleUpdateProfile applies a partial update to the caller's own
// profile. Only displayName and photoUrl are accepted; fields absent from
// the body stay untouched (merge semantics). Runs behind RequireAuth.
//
// HTTP: PATCH /api/me/profile
func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("no session"))
		return
	}

	var update model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if err := h.svc.UpdateUserProfile(r.Context(), userID, update); err != nil {
		writeError(w, err)
		return
	}

	// Return the merged document so the client can re-render without a
	// second request.
	profile, err := h.svc.GetUserData(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

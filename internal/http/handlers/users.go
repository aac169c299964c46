package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"repurpose-backend/internal/domain"
)

type profileResponse struct {
	ID          uuid.UUID       `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Me returns the authenticated caller's profile.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load profile")
		return
	}
	a.json(w, http.StatusOK, profileResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        string(user.Role),
		Preferences: user.Preferences,
		CreatedAt:   user.CreatedAt,
	})
}

// UpdateMyPreferences overwrites the caller's preferences document.
func (a *App) UpdateMyPreferences(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req struct {
		Preferences json.RawMessage `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Preferences) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "preferences required")
		return
	}
	if err := a.Users.SetPreferences(r.Context(), userID, req.Preferences); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to store preferences")
		return
	}
	a.json(w, http.StatusOK, map[string]json.RawMessage{"preferences": req.Preferences})
}

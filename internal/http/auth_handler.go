package api

import (
	"encoding/json"
	"net/http"

	"github.com/Devy09/masetrack-sub001/internal/platform/apperr"
	"github.com/Devy09/masetrack-sub001/internal/platform/session"
	"github.com/Devy09/masetrack-sub001/internal/worker"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary     Log in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      loginRequest  true  "Credentials"
// @Success     200      {object}  map[string]any
// @Failure     401      {object}  map[string]string  "invalid credentials"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	u, err := h.userSvc.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	// The session is a full snapshot of the account at login time; it is
	// never refreshed from the store until the next login.
	rec := session.Record{
		SubjectID:   u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Status:      u.Status,
		Batch:       u.Batch,
		Phone:       u.Phone,
	}

	token, err := h.codec.Encode(rec)
	if err != nil {
		errorResponse(w, err)
		return
	}

	session.SetCookie(w, token, h.secureCookie)
	h.publish(worker.Event{Type: worker.EventLogin, ActorID: u.ID})

	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

// @Summary     Log out
// @Tags        auth
// @Success     204
// @Router      /api/v1/auth/logout [post]
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Stateless sessions: logout is cookie deletion, nothing is revoked
	// server-side.
	session.ClearCookie(w, h.secureCookie)
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Current session
// @Tags        auth
// @Produce     json
// @Success     200  {object}  map[string]any  "user, or null when unauthenticated"
// @Router      /api/v1/auth/session [get]
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	token, ok := session.TokenFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}

	rec, err := h.codec.Decode(token)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": rec})
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/Devy09/masetrack-sub001/internal/platform/apperr"
	"github.com/Devy09/masetrack-sub001/internal/worker"
)

type createPollRequest struct {
	Question    string   `json:"question"`
	Description *string  `json:"description"`
	Options     []string `json:"options"`
}

type updateStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

// @Summary     Create a poll
// @Tags        polls
// @Accept      json
// @Produce     json
// @Param       request  body      createPollRequest  true  "Poll"
// @Success     201      {object}  poll.Detail
// @Failure     400      {object}  map[string]string  "validation error"
// @Failure     401      {object}  map[string]string  "unauthorized"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/polls [post]
func (h *Handler) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	rec := SessionFrom(r.Context())

	created, err := h.pollSvc.Create(r.Context(), rec.SubjectID, req.Question, req.Description, req.Options)
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.publish(worker.Event{Type: worker.EventPollCreated, ActorID: rec.SubjectID, SubjectID: created.ID})
	writeJSON(w, http.StatusCreated, created)
}

// @Summary     List polls with tallies
// @Tags        polls
// @Produce     json
// @Success     200  {array}   poll.Detail
// @Failure     500  {object}  map[string]string  "server error"
// @Router      /api/v1/polls [get]
func (h *Handler) handleListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.pollSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, polls)
}

// @Summary     Get one poll with tallies
// @Tags        polls
// @Produce     json
// @Param       id   path      int64  true  "Poll ID"
// @Success     200  {object}  poll.Detail
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/polls/{id} [get]
func (h *Handler) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	p, err := h.pollSvc.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// @Summary     Open or close a poll
// @Tags        polls
// @Accept      json
// @Param       id       path  int64                true  "Poll ID"
// @Param       request  body  updateStatusRequest  true  "New state"
// @Success     204
// @Failure     403  {object}  map[string]string  "not the creator"
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/polls/{id}/status [patch]
func (h *Handler) handleUpdatePollStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.IsActive == nil {
		errorResponse(w, apperr.Validation("is_active", "required"))
		return
	}

	rec := SessionFrom(r.Context())
	if err := h.pollSvc.SetActive(r.Context(), id, rec.SubjectID, *req.IsActive); err != nil {
		errorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Delete a poll
// @Tags        polls
// @Param       id   path  int64  true  "Poll ID"
// @Success     204
// @Failure     403  {object}  map[string]string  "not the creator"
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/polls/{id} [delete]
func (h *Handler) handleDeletePoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	rec := SessionFrom(r.Context())
	if err := h.pollSvc.Delete(r.Context(), id, rec.SubjectID); err != nil {
		errorResponse(w, err)
		return
	}

	h.publish(worker.Event{Type: worker.EventPollDeleted, ActorID: rec.SubjectID, SubjectID: id})
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/Devy09/masetrack-sub001/internal/metrics"
	"github.com/Devy09/masetrack-sub001/internal/platform/apperr"
	"github.com/Devy09/masetrack-sub001/internal/worker"
)

type voteRequest struct {
	OptionID int64 `json:"option_id"`
}

// @Summary     Cast or move a vote
// @Tags        votes
// @Accept      json
// @Produce     json
// @Param       id       path      int64        true  "Poll ID"
// @Param       request  body      voteRequest  true  "Vote payload"
// @Success     200      {object}  vote.Ballot
// @Failure     400      {object}  map[string]string  "invalid option"
// @Failure     401      {object}  map[string]string  "unauthorized"
// @Failure     404      {object}  map[string]string  "poll not found"
// @Failure     409      {object}  map[string]string  "poll closed"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/polls/{id}/vote [post]
func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.OptionID == 0 {
		errorResponse(w, apperr.Validation("option_id", "required"))
		return
	}

	rec := SessionFrom(r.Context())

	ballot, err := h.voteSvc.Cast(r.Context(), pollID, req.OptionID, rec.SubjectID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	metrics.IncVote()
	h.publish(worker.Event{Type: worker.EventVoteCast, ActorID: rec.SubjectID, SubjectID: pollID})

	writeJSON(w, http.StatusOK, ballot)
}

// @Summary     The caller's vote on a poll
// @Tags        votes
// @Produce     json
// @Param       id   path      int64  true  "Poll ID"
// @Success     200  {object}  vote.Status
// @Failure     401  {object}  map[string]string  "unauthorized"
// @Failure     500  {object}  map[string]string  "server error"
// @Router      /api/v1/polls/{id}/vote [get]
func (h *Handler) handleMyVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	rec := SessionFrom(r.Context())

	status, err := h.voteSvc.UserVote(r.Context(), pollID, rec.SubjectID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

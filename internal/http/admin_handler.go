package api

import (
	"encoding/json"
	"net/http"

	"github.com/Devy09/masetrack-sub001/internal/domain/user"
	"github.com/Devy09/masetrack-sub001/internal/platform/apperr"
)

type assignMPRequest struct {
	UserID int64 `json:"user_id"`
	MPID   int64 `json:"mp_id"`
}

// @Summary     Admin overview metrics
// @Tags        admin
// @Produce     json
// @Success     200  {object}  report.Overview
// @Failure     401  {object}  map[string]string  "unauthorized"
// @Failure     403  {object}  map[string]string  "forbidden"
// @Failure     500  {object}  map[string]string  "server error"
// @Router      /api/v1/admin/overview [get]
func (h *Handler) handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.reportSvc.Overview(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

// @Summary     List MP records
// @Tags        admin
// @Produce     json
// @Success     200  {array}   mp.MP
// @Failure     403  {object}  map[string]string  "forbidden"
// @Router      /api/v1/admin/mps [get]
func (h *Handler) handleListMPs(w http.ResponseWriter, r *http.Request) {
	mps, err := h.mpSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mps)
}

// @Summary     Assign a user to an MP
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request  body      assignMPRequest  true  "Assignment"
// @Success     200      {object}  user.User
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     404      {object}  map[string]string  "user or mp not found"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/admin/mp-assignments [post]
func (h *Handler) handleAssignMP(w http.ResponseWriter, r *http.Request) {
	var req assignMPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.UserID == 0 || req.MPID == 0 {
		errorResponse(w, apperr.Validation("user_id", "user_id and mp_id are required"))
		return
	}

	if err := h.mpSvc.Assign(r.Context(), req.UserID, req.MPID); err != nil {
		errorResponse(w, err)
		return
	}

	u, err := h.userSvc.GetByID(r.Context(), req.UserID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// @Summary     Create a user account
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request  body      user.CreateInput  true  "Account"
// @Success     201      {object}  user.User
// @Failure     400      {object}  map[string]string  "validation error"
// @Failure     403      {object}  map[string]string  "forbidden"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/admin/users [post]
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	u, err := h.userSvc.Create(r.Context(), req)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// @Summary     List user accounts
// @Tags        admin
// @Produce     json
// @Success     200  {array}   user.User
// @Failure     403  {object}  map[string]string  "forbidden"
// @Router      /api/v1/admin/users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

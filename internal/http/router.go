package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/Devy09/masetrack-sub001/internal/domain/mp"
	"github.com/Devy09/masetrack-sub001/internal/domain/poll"
	"github.com/Devy09/masetrack-sub001/internal/domain/report"
	"github.com/Devy09/masetrack-sub001/internal/domain/user"
	"github.com/Devy09/masetrack-sub001/internal/domain/vote"
	"github.com/Devy09/masetrack-sub001/internal/platform/session"
	"github.com/Devy09/masetrack-sub001/internal/worker"
)

type Handler struct {
	userSvc      *user.Service
	pollSvc      *poll.Service
	voteSvc      *vote.Service
	mpSvc        *mp.Service
	reportSvc    *report.Service
	codec        *session.Codec
	activityCh   chan<- worker.Event
	secureCookie bool
	db           *sql.DB
}

func NewRouter(
	userSvc *user.Service,
	pollSvc *poll.Service,
	voteSvc *vote.Service,
	mpSvc *mp.Service,
	reportSvc *report.Service,
	codec *session.Codec,
	activityCh chan<- worker.Event,
	secureCookie bool,
	db *sql.DB,
) http.Handler {
	h := &Handler{
		userSvc:      userSvc,
		pollSvc:      pollSvc,
		voteSvc:      voteSvc,
		mpSvc:        mpSvc,
		reportSvc:    reportSvc,
		codec:        codec,
		activityCh:   activityCh,
		secureCookie: secureCookie,
		db:           db,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.handleLogin)
		r.Post("/auth/logout", h.handleLogout)
		r.Get("/auth/session", h.handleSession)

		// Poll reads are public.
		r.Get("/polls", h.handleListPolls)
		r.Get("/polls/{id}", h.handleGetPoll)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(codec))

			r.Post("/polls", h.handleCreatePoll)
			r.Delete("/polls/{id}", h.handleDeletePoll)
			r.Patch("/polls/{id}/status", h.handleUpdatePollStatus)
			r.With(RateLimitVotes(rate.Every(time.Minute/10), 3)).Post("/polls/{id}/vote", h.handleVote)
			r.Get("/polls/{id}/vote", h.handleMyVote)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(user.RoleAdmin, user.RolePersonnel))
				r.Get("/admin/overview", h.handleAdminOverview)
				r.Get("/admin/mps", h.handleListMPs)
				r.Post("/admin/mp-assignments", h.handleAssignMP)

				r.Group(func(r chi.Router) {
					r.Use(RequireRole(user.RoleAdmin))
					r.Post("/admin/users", h.handleCreateUser)
					r.Get("/admin/users", h.handleListUsers)
				})
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	return strconv.ParseInt(idStr, 10, 64)
}

func (h *Handler) publish(ev worker.Event) {
	if h.activityCh == nil {
		return
	}
	select {
	case h.activityCh <- ev:
	default:
	}
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

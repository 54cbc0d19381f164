package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/Devy09/masetrack-sub001/docs"
	"github.com/Devy09/masetrack-sub001/internal/config"
	"github.com/Devy09/masetrack-sub001/internal/domain/mp"
	"github.com/Devy09/masetrack-sub001/internal/domain/poll"
	"github.com/Devy09/masetrack-sub001/internal/domain/report"
	"github.com/Devy09/masetrack-sub001/internal/domain/user"
	"github.com/Devy09/masetrack-sub001/internal/domain/vote"
	api "github.com/Devy09/masetrack-sub001/internal/http"
	"github.com/Devy09/masetrack-sub001/internal/metrics"
	"github.com/Devy09/masetrack-sub001/internal/platform/database"
	"github.com/Devy09/masetrack-sub001/internal/platform/session"
	"github.com/Devy09/masetrack-sub001/internal/repository/postgres"
	"github.com/Devy09/masetrack-sub001/internal/worker"
)

// @title           Masetrack Core API
// @version         1.0
// @description     Session-authenticated tracking portal with poll voting
// @BasePath        /api/v1
func main() {
	cfg := config.Load()
	metrics.Register()

	db, err := database.NewPostgres(cfg.DBDSN)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	pollRepo := postgres.NewPollRepo(db)
	voteRepo := postgres.NewVoteRepo(db)
	mpRepo := postgres.NewMPRepo(db)
	reportRepo := postgres.NewReportRepo(db)
	activityRepo := postgres.NewActivityRepo(db)

	userSvc := user.NewService(userRepo)
	pollSvc := poll.NewService(pollRepo)
	voteSvc := vote.NewService(voteRepo)
	mpSvc := mp.NewService(mpRepo)
	reportSvc := report.NewService(reportRepo)

	codec := session.NewCodec(cfg.SessionSecret, "masetrack")

	activityCh := make(chan worker.Event, 100)
	activityWorker := worker.NewActivityWorker(activityCh, activityRepo, slog.Default())

	router := api.NewRouter(userSvc, pollSvc, voteSvc, mpSvc, reportSvc, codec, activityCh, cfg.IsProduction(), db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go activityWorker.Run(ctx)

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}

	log.Println("server stopped")
}

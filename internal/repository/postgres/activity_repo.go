package postgres

import (
	"context"
	"database/sql"

	"github.com/Devy09/masetrack-sub001/internal/worker"
)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Record(ctx context.Context, ev worker.Event) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO activity_log (event_type, actor_id, subject_id)
        VALUES ($1, $2, $3)
    `, string(ev.Type), ev.ActorID, ev.SubjectID)
	return err
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/Devy09/masetrack-sub001/internal/domain/report"
)

type ReportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

func (r *ReportRepo) Overview(ctx context.Context) (*report.Overview, error) {
	ov := &report.Overview{}

	err := r.db.QueryRowContext(ctx, `
        SELECT
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM users WHERE status = 'active'),
            (SELECT COUNT(*) FROM polls),
            (SELECT COUNT(*) FROM polls WHERE is_active),
            (SELECT COUNT(*) FROM votes)
    `).Scan(&ov.TotalUsers, &ov.ActiveUsers, &ov.TotalPolls, &ov.OpenPolls, &ov.TotalVotes)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT batch, COUNT(*) FROM users
        WHERE batch <> ''
        GROUP BY batch ORDER BY batch
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var bc report.BatchCount
		if err := rows.Scan(&bc.Batch, &bc.Users); err != nil {
			return nil, err
		}
		ov.Batches = append(ov.Batches, bc)
	}
	return ov, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Devy09/masetrack-sub001/internal/domain/poll"
)

type PollRepo struct {
	db *sql.DB
}

func NewPollRepo(db *sql.DB) *PollRepo {
	return &PollRepo{db: db}
}

// Create persists the poll and its options in one transaction so a dropped
// connection never leaves a poll without its options.
func (r *PollRepo) Create(ctx context.Context, p *poll.Poll, options []poll.Option) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	queryPoll := `
        INSERT INTO polls (question, description, is_active, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err = tx.QueryRowContext(ctx, queryPoll,
		p.Question, p.Description, p.IsActive, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return err
	}

	queryOpt := `
        INSERT INTO options (poll_id, text)
        VALUES ($1, $2)
        RETURNING id
    `
	for i := range options {
		options[i].PollID = p.ID
		if err := tx.QueryRowContext(ctx, queryOpt, options[i].PollID, options[i].Text).
			Scan(&options[i].ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PollRepo) GetByID(ctx context.Context, id int64) (*poll.Detail, error) {
	d := &poll.Detail{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, question, description, is_active, created_by, created_at
        FROM polls WHERE id = $1
    `, id).Scan(&d.ID, &d.Question, &d.Description, &d.IsActive, &d.CreatedBy, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, poll.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	opts, total, err := r.optionsWithTallies(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Options = opts
	d.TotalVotes = total
	return d, nil
}

// List returns all polls newest-first with per-option tallies computed from
// the vote rows at read time.
func (r *PollRepo) List(ctx context.Context) ([]poll.Detail, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, question, description, is_active, created_by, created_at
        FROM polls ORDER BY created_at DESC, id DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []poll.Detail
	for rows.Next() {
		var d poll.Detail
		if err := rows.Scan(&d.ID, &d.Question, &d.Description, &d.IsActive,
			&d.CreatedBy, &d.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range res {
		opts, total, err := r.optionsWithTallies(ctx, res[i].ID)
		if err != nil {
			return nil, err
		}
		res[i].Options = opts
		res[i].TotalVotes = total
	}
	return res, nil
}

func (r *PollRepo) optionsWithTallies(ctx context.Context, pollID int64) ([]poll.Option, int64, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT o.id, o.poll_id, o.text, COUNT(v.id)
        FROM options o
        LEFT JOIN votes v ON v.option_id = o.id
        WHERE o.poll_id = $1
        GROUP BY o.id, o.poll_id, o.text
        ORDER BY o.id
    `, pollID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var opts []poll.Option
	var total int64
	for rows.Next() {
		var o poll.Option
		if err := rows.Scan(&o.ID, &o.PollID, &o.Text, &o.Votes); err != nil {
			return nil, 0, err
		}
		total += o.Votes
		opts = append(opts, o)
	}
	return opts, total, rows.Err()
}

func (r *PollRepo) CreatorOf(ctx context.Context, id int64) (int64, error) {
	var creator int64
	err := r.db.QueryRowContext(ctx, `SELECT created_by FROM polls WHERE id = $1`, id).Scan(&creator)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, poll.ErrNotFound
	}
	return creator, err
}

func (r *PollRepo) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE polls SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// Delete removes the poll; options and votes go with it via ON DELETE CASCADE.
func (r *PollRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return poll.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Devy09/masetrack-sub001/internal/domain/vote"
)

type VoteRepo struct {
	db *sql.DB
}

func NewVoteRepo(db *sql.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// Upsert relies on the UNIQUE (poll_id, user_id) index: two concurrent casts
// from the same user are serialized by the constraint and converge on the
// later option instead of producing two rows. This is one atomic statement,
// never a check-then-write.
func (r *VoteRepo) Upsert(ctx context.Context, v *vote.Vote) error {
	query := `
        INSERT INTO votes (poll_id, option_id, user_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (poll_id, user_id)
        DO UPDATE SET option_id = EXCLUDED.option_id, voted_at = now()
        RETURNING id, voted_at
    `
	err := r.db.QueryRowContext(ctx, query, v.PollID, v.OptionID, v.UserID).
		Scan(&v.ID, &v.VotedAt)
	if err != nil {
		// A raced poll delete surfaces as an FK violation on poll_id or
		// option_id; report it as a missing poll, not a 500.
		if isForeignKeyViolation(err) {
			return vote.ErrPollNotFound
		}
		return err
	}
	return nil
}

func (r *VoteRepo) PollOpen(ctx context.Context, pollID int64) (bool, error) {
	var active bool
	err := r.db.QueryRowContext(ctx, `SELECT is_active FROM polls WHERE id = $1`, pollID).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, vote.ErrPollNotFound
	}
	if err != nil {
		return false, err
	}
	return active, nil
}

func (r *VoteRepo) OptionInPoll(ctx context.Context, pollID, optionID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
        SELECT EXISTS (SELECT 1 FROM options WHERE id = $1 AND poll_id = $2)
    `, optionID, pollID).Scan(&ok)
	return ok, err
}

func (r *VoteRepo) CountByPoll(ctx context.Context, pollID int64) (map[int64]int64, int64, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT option_id, COUNT(*)
        FROM votes
        WHERE poll_id = $1
        GROUP BY option_id
    `, pollID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	res := make(map[int64]int64)
	var total int64
	for rows.Next() {
		var optID, c int64
		if err := rows.Scan(&optID, &c); err != nil {
			return nil, 0, err
		}
		res[optID] = c
		total += c
	}
	return res, total, rows.Err()
}

func (r *VoteRepo) UserVote(ctx context.Context, pollID, userID int64) (*vote.UserVote, error) {
	uv := &vote.UserVote{}
	err := r.db.QueryRowContext(ctx, `
        SELECT v.option_id, o.text, v.voted_at
        FROM votes v
        JOIN options o ON o.id = v.option_id
        WHERE v.poll_id = $1 AND v.user_id = $2
    `, pollID, userID).Scan(&uv.OptionID, &uv.OptionText, &uv.VotedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return uv, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

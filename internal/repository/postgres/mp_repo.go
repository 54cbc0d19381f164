package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Devy09/masetrack-sub001/internal/domain/mp"
)

type MPRepo struct {
	db *sql.DB
}

func NewMPRepo(db *sql.DB) *MPRepo {
	return &MPRepo{db: db}
}

func (r *MPRepo) GetByID(ctx context.Context, id int64) (*mp.MP, error) {
	m := &mp.MP{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, name, constituency, party FROM mps WHERE id = $1
    `, id).Scan(&m.ID, &m.Name, &m.Constituency, &m.Party)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mp.ErrMPNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MPRepo) List(ctx context.Context) ([]mp.MP, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, constituency, party FROM mps ORDER BY name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []mp.MP
	for rows.Next() {
		var m mp.MP
		if err := rows.Scan(&m.ID, &m.Name, &m.Constituency, &m.Party); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *MPRepo) AssignUser(ctx context.Context, userID, mpID int64) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE users SET assigned_mp_id = $1 WHERE id = $2
    `, mpID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mp.ErrUserNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/Devy09/masetrack-sub001/internal/domain/user"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	query := `
        INSERT INTO users (email, password_hash, display_name, role, status, batch, phone)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `
	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.DisplayName, u.Role, u.Status, u.Batch, u.Phone,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*user.User, error) {
	query := `
        SELECT id, email, password_hash, display_name, role, status, batch, phone, assigned_mp_id, created_at
        FROM users ` + where
	u := &user.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Role,
		&u.Status, &u.Batch, &u.Phone, &u.AssignedMPID, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, email, password_hash, display_name, role, status, batch, phone, assigned_mp_id, created_at
        FROM users ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Role,
			&u.Status, &u.Batch, &u.Phone, &u.AssignedMPID, &u.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"users-api/internal/database"
	"users-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation    = "23505"
	usernameConstraint = "ix_users_username"
	emailConstraint    = "ix_users_email"
)

// PostgresStore 以單一借出的連線操作 users 資料表
type PostgresStore struct {
	db database.Conn
}

func NewPostgresStore(db database.Conn) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	row := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(username) = lower($1))`,
		username,
	)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("UsernameExists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`,
		email,
	)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("EmailExists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Insert(ctx context.Context, u *model.User) error {
	row := s.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password)
		 VALUES ($1, $2, $3)
		 RETURNING id, register_date`,
		u.Username,
		u.Email,
		u.Password,
	)
	if err := row.Scan(&u.ID, &u.RegisterDate); err != nil {
		return fmt.Errorf("Insert: %w", classify(err))
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id int) (*model.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, username, email, password, register_date
		 FROM users WHERE id = $1`,
		id,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Password,
		&u.RegisterDate,
	); err != nil {
		return nil, fmt.Errorf("GetByID: %w", classify(err))
	}
	return u, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, username, email, password, register_date
		 FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.RegisterDate); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return users, nil
}

// Update 只寫入 updates 中出現的欄位，單一 UPDATE 敘述即為原子操作
func (s *PostgresStore) Update(ctx context.Context, id int, updates model.Updates) error {
	if err := checkUpdateFields(updates); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if len(updates) == 0 {
		return nil
	}

	sets := make([]string, 0, len(updates))
	args := make([]any, 0, len(updates)+1)
	for _, field := range model.UpdateFields {
		v, ok := updates[field]
		if !ok {
			continue
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", field, len(args)))
	}
	args = append(args, id)
	sql := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("Update: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("Update: %w", ErrNotFound)
	}
	return nil
}

// Delete 於交易中鎖定並刪除該列
func (s *PostgresStore) Delete(ctx context.Context, id int) error {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		var locked int
		if err := tx.QueryRow(ctx,
			`SELECT id FROM users WHERE id = $1 FOR UPDATE`,
			id,
		).Scan(&locked); err != nil {
			return classify(err)
		}
		_, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func classify(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case usernameConstraint:
			return &ConflictError{Username: true}
		case emailConstraint:
			return &ConflictError{Email: true}
		}
		// 其他唯一限制不對應任何欄位，原樣回傳
	}
	return err
}

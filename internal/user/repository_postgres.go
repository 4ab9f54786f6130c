package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const storeTimeout = 5 * time.Second

type PostgresRepository struct {
	db *sql.DB
}

const (
	listUsersQuery = `
		SELECT id, name, email, password, role, phone, created_at, updated_at
		FROM users
		ORDER BY id`
	listUsersByRoleQuery = `
		SELECT id, name, email, password, role, phone, created_at, updated_at
		FROM users
		WHERE role = $1
		ORDER BY id`
	getUserByIDQuery = `
		SELECT id, name, email, password, role, phone, created_at, updated_at
		FROM users
		WHERE id = $1`
	getUserByEmailQuery = `
		SELECT id, name, email, password, role, phone, created_at, updated_at
		FROM users
		WHERE email = $1`
	insertUserQuery = `
		INSERT INTO users (name, email, password, role, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	updateUserQuery = `
		UPDATE users
		SET name = $1,
			email = $2,
			password = $3,
			role = $4,
			phone = $5,
			updated_at = $6
		WHERE id = $7`
	deleteUserQuery = `DELETE FROM users WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var phone, createdAt, updatedAt sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &phone, &createdAt, &updatedAt); err != nil {
		return User{}, err
	}
	u.Phone = phone.String
	u.CreatedAt = createdAt.String
	u.UpdatedAt = updatedAt.String
	return u, nil
}

func (r *PostgresRepository) List(ctx context.Context, role string) ([]User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var rows *sql.Rows
	var err error
	if role == "" {
		rows, err = r.db.QueryContext(ctx, listUsersQuery)
	} else {
		rows, err = r.db.QueryContext(ctx, listUsersByRoleQuery, role)
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, getUserByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, getUserByEmailQuery, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, insertUserQuery,
		u.Name, u.Email, u.Password, u.Role, u.Phone, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int, u User) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, updateUserQuery,
		u.Name, u.Email, u.Password, u.Role, u.Phone, u.UpdatedAt, id)
	if err != nil {
		return User{}, fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return User{}, fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return User{}, ErrNotFound
	}
	u.ID = id
	return u, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

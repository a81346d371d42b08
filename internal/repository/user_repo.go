package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"roombooking/internal/db"
)

// UserRepository backs login and the user-access administration surface.
// The authorisation flag on a caller's own row gates every admin operation.
type UserRepository interface {
	GetByEmail(email string) (*db.User, error)
	GetByID(id int) (*db.User, error)
	List() ([]db.User, error)
	Create(u *db.User) error
	UpdateFlags(id int, settings, authorisation, analytics bool) error
	Delete(id int) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

const userColumns = `id, email, name, password_hash, settings, authorisation, analytics, created_at`

func scanUser(row *sql.Row) (*db.User, error) {
	var u db.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash,
		&u.Settings, &u.Authorisation, &u.Analytics, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByID(id int) (*db.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user %d: %w", id, err)
	}
	return u, nil
}

func (r *userRepository) List() ([]db.User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		var u db.User
		err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash,
			&u.Settings, &u.Authorisation, &u.Analytics, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Create(u *db.User) error {
	query := `
		INSERT INTO users (email, name, password_hash, settings, authorisation, analytics, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`
	return r.db.QueryRow(query, u.Email, u.Name, u.PasswordHash,
		u.Settings, u.Authorisation, u.Analytics).Scan(&u.ID, &u.CreatedAt)
}

func (r *userRepository) UpdateFlags(id int, settings, authorisation, analytics bool) error {
	res, err := r.db.Exec(`UPDATE users SET settings = $1, authorisation = $2, analytics = $3 WHERE id = $4`,
		settings, authorisation, analytics, id)
	if err != nil {
		return fmt.Errorf("error updating user %d flags: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %d not found: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *userRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %d not found: %w", id, sql.ErrNoRows)
	}
	return nil
}

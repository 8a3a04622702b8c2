package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getUserByIDQuery       = `SELECT id, username, email, password, created_at FROM users WHERE id = $1`
	getUserByUsernameQuery = `SELECT id, username, email, password, created_at FROM users WHERE username = $1`
	getUserByEmailQuery    = `SELECT id, username, email, password, created_at FROM users WHERE email = $1`
	insertUserQuery        = `
		INSERT INTO users (username, email, password)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.scanOne(r.db.QueryRow(getUserByIDQuery, id))
}

func (r *PostgresRepository) GetByUsername(username string) (User, error) {
	return r.scanOne(r.db.QueryRow(getUserByUsernameQuery, username))
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.scanOne(r.db.QueryRow(getUserByEmailQuery, email))
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(insertUserQuery, u.Username, u.Email, u.Password).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open connects to postgres through the pgx stdlib driver and verifies the
// connection before returning it.
func Open(databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

// Seed inserts the sample catalog when the products table is empty.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []struct {
		name, description, category string
		price                       string
		stock                       int
	}{
		{"Laptop", "High-performance laptop", "Electronics", "999.99", 10},
		{"Smartphone", "Latest smartphone model", "Electronics", "699.99", 20},
		{"Headphones", "Wireless headphones", "Electronics", "199.99", 30},
		{"T-Shirt", "Cotton t-shirt", "Clothing", "29.99", 50},
		{"Jeans", "Denim jeans", "Clothing", "79.99", 25},
		{"Running Shoes", "Sports running shoes", "Footwear", "149.99", 15},
	}

	for _, s := range samples {
		_, err := db.Exec(
			`INSERT INTO products (name, description, price, stock, category) VALUES ($1,$2,$3,$4,$5)`,
			s.name, s.description, s.price, s.stock, s.category,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

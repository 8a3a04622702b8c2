package product

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT id, name, description, price, stock, category, image_url, created_at, updated_at
		FROM products
		ORDER BY id
	`
	listProductsByCategoryQuery = `
		SELECT id, name, description, price, stock, category, image_url, created_at, updated_at
		FROM products
		WHERE category = $1
		ORDER BY id
	`
	getProductByIDQuery = `
		SELECT id, name, description, price, stock, category, image_url, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (name, description, price, stock, category, image_url)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			stock = $4,
			category = $5,
			image_url = $6,
			updated_at = now()
		WHERE id = $7
		RETURNING created_at, updated_at
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`

	decrementStockQuery = `
		UPDATE products
		SET stock = stock - $1, updated_at = now()
		WHERE id = $2 AND stock >= $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(category string) ([]Product, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == "" {
		rows, err = r.db.Query(listProductsQuery)
	} else {
		rows, err = r.db.Query(listProductsByCategoryQuery, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Name, p.Description, p.Price, p.Stock, p.Category, p.ImageURL).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	err := r.db.QueryRow(updateProductQuery,
		p.Name, p.Description, p.Price, p.Stock, p.Category, p.ImageURL, id).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DecrementStock(id int, qty int) error {
	res, err := r.db.Exec(decrementStockQuery, qty, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// distinguish a missing product from a stock shortfall
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p        Product
		desc     sql.NullString
		imageURL sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &desc, &p.Price, &p.Stock, &p.Category, &imageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Product{}, err
	}
	if desc.Valid {
		p.Description = &desc.String
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return p, nil
}

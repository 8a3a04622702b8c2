package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	lockProductQuery = `
		SELECT name, price, stock
		FROM products
		WHERE id = $1
		FOR UPDATE
	`
	insertOrderQuery = `
		INSERT INTO orders (user_id, total_amount, status, shipping_address)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at
	`
	insertOrderItemQuery = `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`
	decrementStockQuery = `
		UPDATE products
		SET stock = stock - $1, updated_at = now()
		WHERE id = $2
	`
	listOrdersByUserQuery = `
		SELECT id, user_id, total_amount, status, shipping_address, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY id
	`
	getOrderByIDQuery = `
		SELECT id, user_id, total_amount, status, shipping_address, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	listItemsForOrdersQuery = `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, COALESCE(p.name, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::int[])
		ORDER BY oi.id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create runs the whole checkout write inside one transaction. Each product
// row is locked with FOR UPDATE and its stock re-checked immediately before
// the decrement, so two concurrent checkouts cannot both take the last unit.
func (r *PostgresRepository) Create(ctx context.Context, userID *int, shippingAddress string, lines []Line) (Order, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	total := decimal.Zero
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		var (
			name  string
			price decimal.Decimal
			stock int
		)
		err := tx.QueryRowContext(ctx, lockProductQuery, line.ProductID).Scan(&name, &price, &stock)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return Order{}, InsufficientStockError{ProductID: line.ProductID}
			}
			return Order{}, err
		}
		if stock < line.Quantity {
			return Order{}, InsufficientStockError{ProductID: line.ProductID}
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, Item{
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.Quantity,
			Price:       price,
		})
	}

	ord := Order{
		UserID:          userID,
		TotalAmount:     total.Round(2),
		Status:          StatusCompleted,
		ShippingAddress: shippingAddress,
	}

	var uid sql.NullInt64
	if userID != nil {
		uid = sql.NullInt64{Int64: int64(*userID), Valid: true}
	}
	err = tx.QueryRowContext(ctx, insertOrderQuery, uid, ord.TotalAmount, ord.Status, ord.ShippingAddress).
		Scan(&ord.ID, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return Order{}, err
	}

	for i := range items {
		items[i].OrderID = ord.ID
		err := tx.QueryRowContext(ctx, insertOrderItemQuery,
			ord.ID, items[i].ProductID, items[i].Quantity, items[i].Price).
			Scan(&items[i].ID)
		if err != nil {
			return Order{}, err
		}
		if _, err := tx.ExecContext(ctx, decrementStockQuery, items[i].Quantity, items[i].ProductID); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}

	ord.Items = items
	return ord, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, listOrdersByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRowContext(ctx, getOrderByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}

	orders := []Order{ord}
	if err := r.attachItems(ctx, orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

// attachItems batch-fetches the items for every order in the slice.
func (r *PostgresRepository) attachItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int, 0, len(orders))
	index := make(map[int]int, len(orders))
	for i := range orders {
		orders[i].Items = make([]Item, 0)
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = i
	}

	rows, err := r.db.QueryContext(ctx, listItemsForOrdersQuery, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.ProductName); err != nil {
			return err
		}
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		ord Order
		uid sql.NullInt64
	)
	if err := row.Scan(&ord.ID, &uid, &ord.TotalAmount, &ord.Status, &ord.ShippingAddress, &ord.CreatedAt, &ord.UpdatedAt); err != nil {
		return Order{}, err
	}
	if uid.Valid {
		id := int(uid.Int64)
		ord.UserID = &id
	}
	return ord, nil
}

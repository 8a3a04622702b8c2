package order

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sirawit-s/shop-backend/internal/product"
)

type Repository interface {
	// Create atomically validates stock, writes the order with its items and
	// decrements product stock. Either everything is persisted or nothing is.
	Create(ctx context.Context, userID *int, shippingAddress string, lines []Line) (Order, error)
	// ListByUser returns the user's orders, items included, in storage order.
	ListByUser(ctx context.Context, userID int) ([]Order, error)
	GetByID(ctx context.Context, id int) (Order, error)
}

// InMemoryRepository backs handler and service tests. A single mutex
// serializes checkouts against the product repository, standing in for the
// row locks the postgres implementation takes.
type InMemoryRepository struct {
	mu       sync.Mutex
	products product.Repository
	orders   []Order
	nextID   int
}

func NewInMemoryRepository(products product.Repository) *InMemoryRepository {
	return &InMemoryRepository{products: products, nextID: 1}
}

func (r *InMemoryRepository) Create(_ context.Context, userID *int, shippingAddress string, lines []Line) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// validate every line before touching stock so a late failure cannot
	// leave a partial decrement behind
	total := decimal.Zero
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		p, err := r.products.GetByID(line.ProductID)
		if err != nil || p.Stock < line.Quantity {
			return Order{}, InsufficientStockError{ProductID: line.ProductID}
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, Item{
			ProductID:   line.ProductID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			Price:       p.Price,
		})
	}

	for _, line := range lines {
		if err := r.products.DecrementStock(line.ProductID, line.Quantity); err != nil {
			return Order{}, InsufficientStockError{ProductID: line.ProductID}
		}
	}

	now := time.Now().UTC()
	ord := Order{
		ID:              r.nextID,
		UserID:          userID,
		TotalAmount:     total.Round(2),
		Status:          StatusCompleted,
		ShippingAddress: shippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           items,
	}
	r.nextID++
	for i := range ord.Items {
		ord.Items[i].ID = i + 1
		ord.Items[i].OrderID = ord.ID
	}

	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UserID != nil && *ord.UserID == userID {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ord := range r.orders {
		if ord.ID == id {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

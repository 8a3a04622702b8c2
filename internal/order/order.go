package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Checkout only ever writes StatusCompleted; the other two
// exist for schema completeness and have no transition path here.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrMissingAddress = errors.New("shipping address is required")
	ErrForbidden      = errors.New("order belongs to another user")
)

// InsufficientStockError reports which product blocked a checkout.
type InsufficientStockError struct {
	ProductID int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for product %d", e.ProductID)
}

// Order maps to the `orders` table. UserID is nullable: the schema permits
// guest orders even though the checkout route requires a session identity.
type Order struct {
	ID              int             `json:"id"`
	UserID          *int            `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"-"`
	Items           []Item          `json:"items"`
}

// Item is one order line. Price is the product price captured at purchase
// time; ProductName is resolved at read time and may be empty if the product
// was deleted later.
type Item struct {
	ID          int             `json:"-"`
	OrderID     int             `json:"-"`
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Line is a checkout request line taken from the session cart.
type Line struct {
	ProductID int
	Quantity  int
}

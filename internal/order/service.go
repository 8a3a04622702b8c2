package order

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/sirawit-s/shop-backend/internal/cart"
)

// Service drives checkout and order reads. Stock validation lives in the
// repository so it happens inside the same transaction that decrements stock.
type Service struct {
	repo  Repository
	carts *cart.Service
}

func NewService(repo Repository, carts *cart.Service) *Service {
	return &Service{repo: repo, carts: carts}
}

// Checkout turns the session cart into a completed order and clears the cart
// on success. userID may be nil for a guest order; the HTTP layer decides
// whether guests are allowed through.
func (s *Service) Checkout(ctx context.Context, sid string, userID *int, shippingAddress string) (Order, error) {
	items, err := s.carts.Items(sid)
	if err != nil {
		return Order{}, err
	}
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return Order{}, ErrMissingAddress
	}

	// ascending product id keeps the row lock order deterministic
	lines := make([]Line, 0, len(items))
	for pid, qty := range items {
		id, err := strconv.Atoi(pid)
		if err != nil {
			continue
		}
		lines = append(lines, Line{ProductID: id, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	ord, err := s.repo.Create(ctx, userID, shippingAddress, lines)
	if err != nil {
		return Order{}, err
	}

	if err := s.carts.Clear(sid); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns one order, enforcing ownership: a mismatch between the order's
// owner and the caller (guest orders included) is ErrForbidden.
func (s *Service) Get(ctx context.Context, orderID, userID int) (Order, error) {
	ord, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID == nil || *ord.UserID != userID {
		return Order{}, ErrForbidden
	}
	return ord, nil
}

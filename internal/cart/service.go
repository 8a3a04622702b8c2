package cart

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sirawit-s/shop-backend/internal/product"
)

// Service owns the cart operations. Stock checks validate the requested
// quantity of the current call only, never the cumulative cart quantity; that
// is the documented contract, so re-adding a product does not re-check the
// combined amount.
type Service struct {
	store    Store
	products product.Repository
}

func NewService(store Store, products product.Repository) *Service {
	return &Service{store: store, products: products}
}

// Items exposes the raw session cart for checkout.
func (s *Service) Items(sid string) (map[string]int, error) {
	return s.store.Load(sid)
}

// View builds the enriched cart. Entries whose product has been deleted are
// skipped but intentionally stay in the stored cart.
func (s *Service) View(sid string) (View, error) {
	items, err := s.store.Load(sid)
	if err != nil {
		return View{}, err
	}

	view := View{
		Items:     make([]Item, 0, len(items)),
		Total:     decimal.Zero,
		ItemCount: len(items),
	}

	for _, pid := range sortedKeys(items) {
		p, err := s.lookup(pid)
		if err == product.ErrNotFound {
			continue
		}
		if err != nil {
			return View{}, err
		}
		qty := items[pid]
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		view.Items = append(view.Items, Item{
			ProductID:   pid,
			ProductName: p.Name,
			Price:       p.Price,
			Quantity:    qty,
			Subtotal:    subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}

	view.Total = view.Total.Round(2)
	return view, nil
}

// Add puts qty units of a product into the cart, summing with any existing
// entry. It fails with product.ErrNotFound for an unknown product and
// ErrInsufficientStock when qty alone exceeds current stock.
func (s *Service) Add(sid string, productID, qty int) (map[string]int, decimal.Decimal, error) {
	p, err := s.products.GetByID(productID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if qty > p.Stock {
		return nil, decimal.Zero, ErrInsufficientStock
	}

	items, err := s.store.Load(sid)
	if err != nil {
		return nil, decimal.Zero, err
	}
	key := strconv.Itoa(productID)
	items[key] += qty
	// a negative add can act as a decrement; drop the entry once it hits zero
	if items[key] <= 0 {
		delete(items, key)
	}
	if err := s.store.Save(sid, items); err != nil {
		return nil, decimal.Zero, err
	}

	total, err := s.total(items)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return items, total, nil
}

// Update replaces the quantity of a cart entry. A quantity of zero or less
// removes the entry. Fails with ErrNotInCart when the product has no entry.
func (s *Service) Update(sid string, productID, qty int) (decimal.Decimal, error) {
	items, err := s.store.Load(sid)
	if err != nil {
		return decimal.Zero, err
	}

	key := strconv.Itoa(productID)
	if _, ok := items[key]; !ok {
		return decimal.Zero, ErrNotInCart
	}

	if qty <= 0 {
		delete(items, key)
	} else {
		p, err := s.products.GetByID(productID)
		if err != nil {
			return decimal.Zero, err
		}
		if qty > p.Stock {
			return decimal.Zero, ErrInsufficientStock
		}
		items[key] = qty
	}

	if err := s.store.Save(sid, items); err != nil {
		return decimal.Zero, err
	}
	return s.total(items)
}

// Remove drops a product from the cart. Removing an absent product is a no-op.
func (s *Service) Remove(sid string, productID int) (decimal.Decimal, error) {
	items, err := s.store.Load(sid)
	if err != nil {
		return decimal.Zero, err
	}

	key := strconv.Itoa(productID)
	if _, ok := items[key]; ok {
		delete(items, key)
		if err := s.store.Save(sid, items); err != nil {
			return decimal.Zero, err
		}
	}
	return s.total(items)
}

func (s *Service) Clear(sid string) error {
	return s.store.Clear(sid)
}

// total sums price×quantity over the cart, skipping deleted products, rounded
// to two decimal places.
func (s *Service) total(items map[string]int) (decimal.Decimal, error) {
	total := decimal.Zero
	for pid, qty := range items {
		p, err := s.lookup(pid)
		if err == product.ErrNotFound {
			continue
		}
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total.Round(2), nil
}

func (s *Service) lookup(pid string) (product.Product, error) {
	id, err := strconv.Atoi(pid)
	if err != nil {
		return product.Product{}, product.ErrNotFound
	}
	return s.products.GetByID(id)
}

func sortedKeys(items map[string]int) []string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	return keys
}

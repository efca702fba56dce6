package order

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Waleed-Nisar/EcommerceAppProject/internal/product"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("order cannot be cancelled at this stage")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// Repository persists orders. Create and Cancel are atomic units: the
// number mint, every stock movement and the order write all commit together
// or not at all.
type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	ListByCustomer(customerID int) ([]Order, error)
	ListRecent(limit int) ([]Order, error)
	Cancel(ord Order) (Order, error)
	UpdateStatus(ord Order) (Order, error)
	TotalSales(start, end *time.Time) (decimal.Decimal, error)
}

// StockAdjuster is the slice of the product store the in-memory repository
// needs: apply a signed stock delta, failing on underflow.
type StockAdjuster interface {
	AdjustStock(id int, delta int) error
}

// InMemoryRepository serializes all mutations under one mutex, which stands
// in for the database transaction in tests: number minting, stock debits and
// the order append happen as one unit, and partial failures roll the debits
// back.
type InMemoryRepository struct {
	mu       sync.Mutex
	orders   []Order
	counters map[string]int
	stock    StockAdjuster
	nextID   int
	now      func() time.Time
}

func NewInMemoryRepository(stock StockAdjuster) *InMemoryRepository {
	return &InMemoryRepository{
		counters: make(map[string]int),
		stock:    stock,
		nextID:   1,
		now:      time.Now,
	}
}

// SetClock overrides the repository clock; tests use it to pin the day the
// order number is scoped to.
func (r *InMemoryRepository) SetClock(now func() time.Time) {
	r.now = now
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := r.now().UTC().Format("20060102")
	seq := r.counters[day] + 1

	debited := make([]Item, 0, len(ord.Items))
	for _, item := range ord.Items {
		if err := r.stock.AdjustStock(item.ProductID, -item.Quantity); err != nil {
			// roll back debits made so far
			for _, done := range debited {
				_ = r.stock.AdjustStock(done.ProductID, done.Quantity)
			}
			if err == product.ErrNotFound {
				return Order{}, ErrProductNotFound
			}
			return Order{}, ErrInsufficientStock
		}
		debited = append(debited, item)
	}

	r.counters[day] = seq
	ord.OrderNumber = FormatNumber(day, seq)
	ord.ID = r.nextID
	r.nextID++
	for i := range ord.Items {
		ord.Items[i].ID = i + 1
		ord.Items[i].OrderID = ord.ID
		ord.Items[i].Subtotal = ord.Items[i].LineSubtotal()
	}
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ord := range r.orders {
		if ord.ID == id {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByCustomer(customerID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.CustomerID == customerID {
			out = append(out, ord)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (r *InMemoryRepository) ListRecent(limit int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Cancel re-checks the stored status under the lock so a second cancel of
// the same order releases nothing.
func (r *InMemoryRepository) Cancel(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == ord.ID {
			if !r.orders[i].CanBeCancelled() {
				return Order{}, ErrInvalidTransition
			}
			for _, item := range r.orders[i].Items {
				_ = r.stock.AdjustStock(item.ProductID, item.Quantity)
			}
			r.orders[i].Status = StatusCancelled
			return r.orders[i], nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateStatus(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == ord.ID {
			r.orders[i].Status = ord.Status
			r.orders[i].ShippedDate = ord.ShippedDate
			r.orders[i].DeliveredDate = ord.DeliveredDate
			return r.orders[i], nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) TotalSales(start, end *time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, ord := range r.orders {
		if ord.Status == StatusCancelled || ord.Status == StatusRefunded {
			continue
		}
		if start != nil && ord.OrderDate.Before(*start) {
			continue
		}
		if end != nil && ord.OrderDate.After(*end) {
			continue
		}
		sum = sum.Add(ord.TotalAmount)
	}
	return sum, nil
}

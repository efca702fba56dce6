package cart

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Waleed-Nisar/EcommerceAppProject/internal/product"
)

var ErrItemNotFound = errors.New("cart item not found")

type Repository interface {
	// GetOrCreate returns the customer's cart, creating the row on first access.
	GetOrCreate(customerID int) (Cart, error)
	Items(cartID int) ([]Item, error)
	// DeleteItemsBefore removes items added strictly before cutoff.
	DeleteItemsBefore(cartID int, cutoff time.Time) error
	GetItem(cartItemID int) (Item, error)
	GetItemByProduct(cartID, productID int) (Item, error)
	InsertItem(cartID, productID, qty int, addedAt time.Time) error
	UpdateItemQuantity(cartItemID, qty int, addedAt time.Time) error
	DeleteItem(cartItemID int) error
	Clear(cartID int) error
	Touch(cartID int, at time.Time) error
}

// ProductLookup fills the product fields of items the way the Postgres
// repository's join does.
type ProductLookup interface {
	GetByID(id int) (product.Product, error)
}

// InMemoryRepository backs service and handler tests.
type InMemoryRepository struct {
	mu         sync.Mutex
	carts      map[int]Cart // keyed by customerID
	items      map[int]Item // keyed by cartItemID
	products   ProductLookup
	nextCartID int
	nextItemID int
}

func NewInMemoryRepository(products ProductLookup) *InMemoryRepository {
	return &InMemoryRepository{
		carts:      make(map[int]Cart),
		items:      make(map[int]Item),
		products:   products,
		nextCartID: 1,
		nextItemID: 1,
	}
}

func (r *InMemoryRepository) withProduct(item Item) Item {
	if r.products == nil {
		return item
	}
	p, err := r.products.GetByID(item.ProductID)
	if err != nil {
		return item
	}
	item.ProductName = p.Name
	item.ProductPrice = p.Price
	item.ImageURL = p.ImageURL
	return item
}

func (r *InMemoryRepository) GetOrCreate(customerID int) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[customerID]; ok {
		return c, nil
	}
	now := time.Now().UTC()
	c := Cart{ID: r.nextCartID, CustomerID: customerID, CreatedAt: now, UpdatedAt: now}
	r.nextCartID++
	r.carts[customerID] = c
	return c, nil
}

func (r *InMemoryRepository) Items(cartID int) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Item, 0)
	for _, item := range r.items {
		if item.CartID == cartID {
			out = append(out, r.withProduct(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) DeleteItemsBefore(cartID int, cutoff time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.CartID == cartID && item.AddedAt.Before(cutoff) {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *InMemoryRepository) GetItem(cartItemID int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[cartItemID]; ok {
		return r.withProduct(item), nil
	}
	return Item{}, ErrItemNotFound
}

func (r *InMemoryRepository) GetItemByProduct(cartID, productID int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.CartID == cartID && item.ProductID == productID {
			return r.withProduct(item), nil
		}
	}
	return Item{}, ErrItemNotFound
}

// InsertItem upserts like the Postgres ON CONFLICT clause: a duplicate
// (cart, product) pair increments the existing row.
func (r *InMemoryRepository) InsertItem(cartID, productID, qty int, addedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.CartID == cartID && item.ProductID == productID {
			item.Quantity += qty
			item.AddedAt = addedAt
			r.items[id] = item
			return nil
		}
	}
	item := Item{ID: r.nextItemID, CartID: cartID, ProductID: productID, Quantity: qty, AddedAt: addedAt}
	r.nextItemID++
	r.items[item.ID] = item
	return nil
}

func (r *InMemoryRepository) UpdateItemQuantity(cartItemID, qty int, addedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[cartItemID]
	if !ok {
		return ErrItemNotFound
	}
	item.Quantity = qty
	if !addedAt.IsZero() {
		item.AddedAt = addedAt
	}
	r.items[cartItemID] = item
	return nil
}

func (r *InMemoryRepository) DeleteItem(cartItemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[cartItemID]; !ok {
		return ErrItemNotFound
	}
	delete(r.items, cartItemID)
	return nil
}

func (r *InMemoryRepository) Clear(cartID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *InMemoryRepository) Touch(cartID int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for customerID, c := range r.carts {
		if c.ID == cartID {
			c.UpdatedAt = at
			r.carts[customerID] = c
			return nil
		}
	}
	return nil
}

package cart

import (
	"time"

	"github.com/Waleed-Nisar/EcommerceAppProject/internal/customer"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/product"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/stock"
)

// Service orchestrates cart operations. All entry points are keyed by the
// caller's account id; the customer service resolves it to a profile.
type Service struct {
	repo      Repository
	customers customer.ServiceInterface
	products  product.ServiceInterface
	now       func() time.Time
}

func NewService(repo Repository, customers customer.ServiceInterface, products product.ServiceInterface) *Service {
	return &Service{repo: repo, customers: customers, products: products, now: time.Now}
}

// Get returns the cart view, sweeping items older than StaleAfter first.
// The sweep happens only here: a cart that is never read never sweeps.
func (s *Service) Get(userID string) (View, error) {
	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		return View{}, err
	}
	c, err := s.repo.GetOrCreate(cust.ID)
	if err != nil {
		return View{}, err
	}
	if err := s.repo.DeleteItemsBefore(c.ID, s.now().UTC().Add(-StaleAfter)); err != nil {
		return View{}, err
	}
	items, err := s.repo.Items(c.ID)
	if err != nil {
		return View{}, err
	}
	return buildView(c.ID, items), nil
}

// Add puts qty units of a product into the cart. A product already present
// gets its quantity incremented and its added-at refreshed, never a second row.
func (s *Service) Add(userID string, productID, qty int) (View, error) {
	if qty <= 0 {
		return View{}, ErrItemNotFound
	}
	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		return View{}, err
	}
	p, err := s.products.GetByID(productID)
	if err != nil {
		return View{}, err
	}
	if !p.IsActive {
		return View{}, product.ErrNotFound
	}

	c, err := s.repo.GetOrCreate(cust.ID)
	if err != nil {
		return View{}, err
	}

	// the add merges into any existing line, so the stock check covers the
	// combined quantity
	wanted := qty
	if existing, err := s.repo.GetItemByProduct(c.ID, productID); err == nil {
		wanted += existing.Quantity
	} else if err != ErrItemNotFound {
		return View{}, err
	}
	if p.StockQuantity < wanted {
		return View{}, stock.ErrInsufficientStock
	}

	now := s.now().UTC()
	if err := s.repo.InsertItem(c.ID, productID, qty, now); err != nil {
		return View{}, err
	}
	if err := s.repo.Touch(c.ID, now); err != nil {
		return View{}, err
	}
	return s.Get(userID)
}

// UpdateItem sets an item's quantity. Zero or negative removes the item.
func (s *Service) UpdateItem(userID string, cartItemID, qty int) (View, error) {
	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		return View{}, err
	}
	c, err := s.repo.GetOrCreate(cust.ID)
	if err != nil {
		return View{}, err
	}
	item, err := s.repo.GetItem(cartItemID)
	if err != nil {
		return View{}, err
	}
	if item.CartID != c.ID {
		// someone else's item looks exactly like a missing one
		return View{}, ErrItemNotFound
	}

	if qty <= 0 {
		if err := s.repo.DeleteItem(cartItemID); err != nil {
			return View{}, err
		}
		return s.Get(userID)
	}

	p, err := s.products.GetByID(item.ProductID)
	if err != nil {
		return View{}, err
	}
	if p.StockQuantity < qty {
		return View{}, stock.ErrInsufficientStock
	}
	if err := s.repo.UpdateItemQuantity(cartItemID, qty, time.Time{}); err != nil {
		return View{}, err
	}
	if err := s.repo.Touch(c.ID, s.now().UTC()); err != nil {
		return View{}, err
	}
	return s.Get(userID)
}

func (s *Service) Remove(userID string, cartItemID int) error {
	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		return err
	}
	c, err := s.repo.GetOrCreate(cust.ID)
	if err != nil {
		return err
	}
	item, err := s.repo.GetItem(cartItemID)
	if err != nil {
		return err
	}
	if item.CartID != c.ID {
		return ErrItemNotFound
	}
	return s.repo.DeleteItem(cartItemID)
}

func (s *Service) Clear(userID string) error {
	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		return err
	}
	c, err := s.repo.GetOrCreate(cust.ID)
	if err != nil {
		return err
	}
	return s.repo.Clear(c.ID)
}

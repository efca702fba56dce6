package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Waleed-Nisar/EcommerceAppProject/internal/customer"
	"github.com/Waleed-Nisar/EcommerceAppProject/internal/product"
)

// Service is the order lifecycle manager. It owns the state machine and the
// pricing and stock side effects; the repository supplies the atomic unit of
// work around them.
type Service struct {
	repo      Repository
	customers customer.ServiceInterface
	products  product.ServiceInterface
	now       func() time.Time
}

func NewService(repo Repository, customers customer.ServiceInterface, products product.ServiceInterface) *Service {
	return &Service{repo: repo, customers: customers, products: products, now: time.Now}
}

// Create places an order for the given account. Every line is validated
// (product exists and is active, stock suffices) before any debit happens;
// the repository re-checks stock per line inside its transaction because it
// may have moved in between.
func (s *Service) Create(userID string, ship ShippingInfo, lines []Line) (Order, error) {
	if len(lines) == 0 {
		return Order{}, ErrEmptyOrder
	}

	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		if err == customer.ErrNotFound {
			return Order{}, ErrCustomerNotFound
		}
		return Order{}, err
	}

	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return Order{}, ErrInvalidQuantity
		}
		p, err := s.products.GetByID(line.ProductID)
		if err != nil {
			if err == product.ErrNotFound {
				return Order{}, ErrProductNotFound
			}
			return Order{}, err
		}
		if !p.IsActive {
			return Order{}, ErrProductNotFound
		}
		if p.StockQuantity < line.Quantity {
			return Order{}, ErrInsufficientStock
		}
		items = append(items, Item{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
			Discount:    decimal.Zero,
		})
	}

	totals := ComputeTotals(items)
	ord := Order{
		CustomerID:      cust.ID,
		CustomerName:    cust.FullName(),
		TotalAmount:     totals.Total,
		TaxAmount:       totals.Tax,
		ShippingCost:    totals.Shipping,
		Status:          StatusPending,
		ShippingAddress: ship.Address,
		City:            ship.City,
		PostalCode:      ship.PostalCode,
		Country:         ship.Country,
		Notes:           ship.Notes,
		OrderDate:       s.now().UTC(),
		Items:           items,
	}

	created, err := s.repo.Create(ord)
	if err != nil {
		return Order{}, err
	}
	logrus.WithFields(logrus.Fields{
		"orderNumber": created.OrderNumber,
		"customerId":  created.CustomerID,
		"total":       created.TotalAmount.String(),
	}).Info("order created")
	return created, nil
}

// Cancel sets a Pending/Processing order to Cancelled and restores every
// line's stock. Only the owning customer may cancel.
func (s *Service) Cancel(orderID int, userID string) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}

	cust, err := s.customers.GetByUserID(userID)
	if err != nil || ord.CustomerID != cust.ID {
		return Order{}, ErrUnauthorized
	}

	if !ord.CanBeCancelled() {
		return Order{}, ErrInvalidTransition
	}

	cancelled, err := s.repo.Cancel(ord)
	if err != nil {
		return Order{}, err
	}
	logrus.WithField("orderNumber", cancelled.OrderNumber).Info("order cancelled")
	return cancelled, nil
}

// UpdateStatus is the administrative override. It deliberately performs no
// transition-validity check beyond the status being a known value, matching
// the original system's permissive behavior (a Delivered order can be set
// back to Pending). Shipped/Delivered timestamps are stamped once and never
// cleared by later transitions.
func (s *Service) UpdateStatus(orderID int, status Status) (Order, error) {
	if !status.Valid() {
		return Order{}, ErrInvalidStatus
	}

	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}

	ord.Status = status
	now := s.now().UTC()
	if status == StatusShipped && ord.ShippedDate == nil {
		ord.ShippedDate = &now
	}
	if status == StatusDelivered && ord.DeliveredDate == nil {
		ord.DeliveredDate = &now
	}

	return s.repo.UpdateStatus(ord)
}

// GetByID returns an order, restricted to its owner unless the caller is an
// administrator.
func (s *Service) GetByID(orderID int, userID string, isAdmin bool) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if !isAdmin {
		cust, err := s.customers.GetByUserID(userID)
		if err != nil || ord.CustomerID != cust.ID {
			return Order{}, ErrUnauthorized
		}
	}
	return ord, nil
}

func (s *Service) ListByUser(userID string) ([]Order, error) {
	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		if err == customer.ErrNotFound {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.repo.ListByCustomer(cust.ID)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListRecent(100)
}

// TotalSales sums order totals excluding Cancelled and Refunded orders,
// optionally bounded by an inclusive creation-date range.
func (s *Service) TotalSales(start, end *time.Time) (decimal.Decimal, error) {
	return s.repo.TotalSales(start, end)
}

package customer

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("customer not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
)

type Repository interface {
	GetByID(id int) (Customer, error)
	GetByUserID(userID string) (Customer, error)
	GetByEmail(email string) (Customer, error)
	Create(c Customer) (Customer, error)
	Update(id int, c Customer) (Customer, error)
}

// InMemoryRepository backs service and handler tests.
type InMemoryRepository struct {
	mu        sync.RWMutex
	customers []Customer
	nextID    int
}

func NewInMemoryRepository(seed []Customer) *InMemoryRepository {
	r := &InMemoryRepository{
		customers: make([]Customer, 0, len(seed)),
		nextID:    1,
	}
	maxID := 0
	for _, c := range seed {
		r.customers = append(r.customers, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) GetByID(id int) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) GetByUserID(userID string) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.UserID == userID {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) Create(c Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	r.customers = append(r.customers, c)
	return c, nil
}

func (r *InMemoryRepository) Update(id int, c Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.customers {
		if r.customers[i].ID == id {
			c.ID = id
			r.customers[i] = c
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

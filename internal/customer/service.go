package customer

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface is what other packages depend on when they need customer
// lookups (order ownership checks, cart resolution).
type ServiceInterface interface {
	GetByID(id int) (Customer, error)
	GetByUserID(userID string) (Customer, error)
	Register(c Customer, password string) (Customer, error)
	Authenticate(email, password string) (Customer, error)
	UpdateProfile(id int, c Customer) (Customer, error)
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (Customer, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByUserID(userID string) (Customer, error) {
	return s.repo.GetByUserID(userID)
}

// Register creates a profile with a fresh account id and a bcrypt password
// hash. Duplicate emails are rejected before hitting the unique index so the
// caller gets a typed error instead of a driver error.
func (s *Service) Register(c Customer, password string) (Customer, error) {
	if _, err := s.repo.GetByEmail(c.Email); err == nil {
		return Customer{}, ErrEmailExists
	} else if err != ErrNotFound {
		return Customer{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Customer{}, err
	}

	c.UserID = uuid.NewString()
	c.PasswordHash = string(hashed)
	return s.repo.Create(c)
}

func (s *Service) Authenticate(email, password string) (Customer, error) {
	c, err := s.repo.GetByEmail(email)
	if err != nil {
		return Customer{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return Customer{}, ErrInvalidCredentials
	}
	return c, nil
}

func (s *Service) UpdateProfile(id int, c Customer) (Customer, error) {
	return s.repo.Update(id, c)
}

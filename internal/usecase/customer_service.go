package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/minhquangvu/store-backoffice/internal/domain/entity"
	"github.com/minhquangvu/store-backoffice/internal/domain/repository"
)

// CustomerService implements CustomerUsecase with repository dependency.
type CustomerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) Create(ctx context.Context, input CreateCustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)

	if name == "" || phone == "" {
		return nil, errors.New("name and phone are required")
	}

	customer := &entity.Customer{
		Name:      name,
		Phone:     phone,
		Email:     strings.TrimSpace(strings.ToLower(input.Email)),
		Address:   strings.TrimSpace(input.Address),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	return s.repo.Create(ctx, customer)
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CustomerService) List(ctx context.Context) ([]*entity.Customer, error) {
	return s.repo.List(ctx)
}

func (s *CustomerService) Update(ctx context.Context, id int64, input UpdateCustomerInput) (*entity.Customer, error) {
	if id <= 0 {
		return nil, errors.New("invalid customer id")
	}

	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) != "" {
		customer.Name = strings.TrimSpace(input.Name)
	}
	if strings.TrimSpace(input.Phone) != "" {
		customer.Phone = strings.TrimSpace(input.Phone)
	}
	if strings.TrimSpace(input.Email) != "" {
		customer.Email = strings.ToLower(strings.TrimSpace(input.Email))
	}
	if strings.TrimSpace(input.Address) != "" {
		customer.Address = strings.TrimSpace(input.Address)
	}

	customer.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, customer)
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("invalid customer id")
	}
	return s.repo.Delete(ctx, id)
}

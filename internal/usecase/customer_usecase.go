package usecase

import (
	"context"

	"github.com/minhquangvu/store-backoffice/internal/domain/entity"
)

// CustomerUsecase exposes application-level operations for Customer.
type CustomerUsecase interface {
	Create(ctx context.Context, input CreateCustomerInput) (*entity.Customer, error)
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	Update(ctx context.Context, id int64, input UpdateCustomerInput) (*entity.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// CreateCustomerInput carries data required to create a customer.
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// UpdateCustomerInput carries data required to update a customer.
type UpdateCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

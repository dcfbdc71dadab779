package repository

import (
	"context"

	"github.com/minhquangvu/store-backoffice/internal/domain/entity"
)

// CustomerRepository defines persistence behavior for the Customer entity.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	Delete(ctx context.Context, id int64) error
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/minhquangvu/store-backoffice/internal/domain/entity"
	"github.com/minhquangvu/store-backoffice/internal/domain/repository"
)

// CustomerRepository is a PostgreSQL implementation of CustomerRepository.
// This is a skeleton to show infrastructure adapter placement.
type CustomerRepository struct {
	db *sql.DB
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	return nil, errors.New("postgres repository not implemented")
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	return nil, errors.New("postgres repository not implemented")
}

func (r *CustomerRepository) List(ctx context.Context) ([]*entity.Customer, error) {
	return nil, errors.New("postgres repository not implemented")
}

func (r *CustomerRepository) Update(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	return nil, errors.New("postgres repository not implemented")
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	return errors.New("postgres repository not implemented")
}

package inmemory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/minhquangvu/store-backoffice/internal/domain/entity"
	"github.com/minhquangvu/store-backoffice/internal/domain/repository"
)

// CustomerRepository is an in-memory implementation of CustomerRepository.
type CustomerRepository struct {
	mu     sync.RWMutex
	nextID int64
	store  map[int64]*entity.Customer
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		nextID: 1,
		store:  make(map[int64]*entity.Customer),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customerCopy := *customer
	customerCopy.ID = r.nextID
	customerCopy.Code = fmt.Sprintf("KH%05d", customerCopy.ID)
	r.nextID++
	r.store[customerCopy.ID] = &customerCopy

	result := customerCopy
	return &result, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.store[id]
	if !ok {
		return nil, errors.New("customer not found")
	}

	copy := *customer
	return &copy, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Customer, 0, len(r.store))
	for _, customer := range r.store {
		copy := *customer
		result = append(result, &copy)
	}
	return result, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[customer.ID]; !ok {
		return nil, errors.New("customer not found")
	}

	copy := *customer
	r.store[customer.ID] = &copy
	result := copy
	return &result, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return errors.New("customer not found")
	}
	delete(r.store, id)
	return nil
}

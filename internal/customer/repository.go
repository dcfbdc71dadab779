package customer

import "errors"

var (
	ErrNotFound    = errors.New("customer not found")
	ErrPhoneExists = errors.New("customer phone number already exists")
)

type Repository interface {
	List(params ListParams) ([]Customer, error)
	Count(params ListParams) (int, error)
	GetByID(id int) (Customer, error)
	GetByPhoneNumber(phone string) (Customer, error)
	Create(customer Customer) (Customer, error)
	Update(id int, customer Customer) (Customer, error)
	Delete(id int) error
}

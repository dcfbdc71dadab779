package category

import "errors"

var ErrNotFound = errors.New("category not found")

type Repository interface {
	List(page, limit int, search string) ([]Category, error)
	Count(search string) (int, error)
	GetByID(id int) (Category, error)
	Create(cat Category) (Category, error)
	Update(id int, cat Category) (Category, error)
	Delete(id int) error
}

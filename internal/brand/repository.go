package brand

import "errors"

var ErrNotFound = errors.New("brand not found")

type Repository interface {
	List(page, limit int, search string) ([]Brand, error)
	Count(search string) (int, error)
	GetByID(id int) (Brand, error)
	Create(b Brand) (Brand, error)
	Update(id int, b Brand) (Brand, error)
	Delete(id int) error
}

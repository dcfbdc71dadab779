package user

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrPhoneExists        = errors.New("phone number already exists")
)

type Repository interface {
	List(params ListParams) ([]User, error)
	Count(params ListParams) (int, error)
	GetByID(id int) (User, error)
	GetByEmail(email string) (User, error)
	GetByPhoneNumber(phone string) (User, error)
	Create(user User) (User, error)
	Update(id int, user User) (User, error)
	UpdatePassword(id int, hashed string) error
	Delete(id int) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	users  []User
	nextID int
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	repo := &InMemoryRepository{
		users:  make([]User, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, user := range seed {
		repo.users = append(repo.users, user)
		if user.ID > maxID {
			maxID = user.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) List(params ListParams) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	params = params.normalized()
	matched := r.filter(params)

	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch params.Sort {
		case "email":
			less = matched[i].Email < matched[j].Email
		case "created_on":
			less = matched[i].CreatedAt < matched[j].CreatedAt
		default:
			less = matched[i].Name < matched[j].Name
		}
		if params.Order == "desc" {
			return !less
		}
		return less
	})

	start := params.Page * params.Limit
	if start >= len(matched) {
		return []User{}, nil
	}
	end := start + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *InMemoryRepository) Count(params ListParams) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filter(params.normalized())), nil
}

// filter applies role and search criteria; callers must hold the lock.
func (r *InMemoryRepository) filter(params ListParams) []User {
	matched := make([]User, 0, len(r.users))
	for _, user := range r.users {
		if params.Role != "" && !hasRole(user, params.Role) {
			continue
		}
		if params.Search != "" &&
			!strings.Contains(user.Name, params.Search) &&
			!strings.Contains(user.Phone, params.Search) {
			continue
		}
		matched = append(matched, user)
	}
	return matched
}

func hasRole(user User, role string) bool {
	for _, r := range user.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (r *InMemoryRepository) GetByID(id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByPhoneNumber(phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Phone == phone {
			return user, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}

	r.users = append(r.users, user)
	return user, nil
}

func (r *InMemoryRepository) Update(id int, userUpdate User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == id {
			user.Name = userUpdate.Name
			user.Email = userUpdate.Email
			user.Phone = userUpdate.Phone
			if len(userUpdate.Roles) > 0 {
				user.Roles = userUpdate.Roles
			}
			if userUpdate.UpdatedAt != "" {
				user.UpdatedAt = userUpdate.UpdatedAt
			}
			r.users[i] = user
			return user, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) UpdatePassword(id int, hashed string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == id {
			r.users[i].Password = hashed
			return nil
		}
	}

	return ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

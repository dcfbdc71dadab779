package order

import (
	"time"

	"github.com/minhquangvu/store-backoffice/internal/customer"
	"github.com/minhquangvu/store-backoffice/internal/user"
)

type customerGetter interface {
	GetByID(id int) (customer.Customer, error)
}

type userGetter interface {
	GetByID(id int) (user.User, error)
}

// Service runs the order assembly workflow and the order reporting queries.
type Service struct {
	repo      Repository
	customers customerGetter
	users     userGetter
}

func NewService(repo Repository, customers customerGetter, users userGetter) *Service {
	return &Service{repo: repo, customers: customers, users: users}
}

// Create validates the request and hands it to the repository, which applies
// every effect in one transaction. Either the whole order (header, details,
// stock decrements, customer accumulation, code) is persisted, or nothing is.
func (s *Service) Create(req CreateOrderRequest) (OrderDetailResponse, error) {
	if _, err := s.customers.GetByID(req.CustomerID); err != nil {
		if err == customer.ErrNotFound {
			return OrderDetailResponse{}, ErrCustomerNotFound
		}
		return OrderDetailResponse{}, err
	}
	if _, err := s.users.GetByID(req.CreatorID); err != nil {
		if err == user.ErrNotFound {
			return OrderDetailResponse{}, ErrCreatorNotFound
		}
		return OrderDetailResponse{}, err
	}
	if len(req.LineItems) == 0 {
		return OrderDetailResponse{}, ErrNoLineItems
	}
	if req.CashReceive < req.TotalPayment {
		return OrderDetailResponse{}, ErrInsufficientCash
	}

	// per-item checks happen in the repository after each variant is
	// resolved, so an unknown variant is reported before its quantity
	return s.repo.Create(req)
}

// List returns one page of orders filtered by creation date range and code
// substring, newest first. The repository returns the whole ordered result
// and the page window is cut here.
func (s *Service) List(page, limit int, code string, start, end time.Time) ([]Order, error) {
	orders, err := s.repo.ListByDateAndCode(start, end, code)
	if err != nil {
		return nil, err
	}
	return paginate(orders, page, limit), nil
}

// Count returns how many orders match the date range and code filter.
func (s *Service) Count(code string, start, end time.Time) (int, error) {
	orders, err := s.repo.ListByDateAndCode(start, end, code)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

// GetDetail returns the order header with all its line items.
func (s *Service) GetDetail(id int) (OrderDetailResponse, error) {
	return s.repo.GetByID(id)
}

// TodayRevenue returns one page of today's orders and the revenue summed
// over that page. A day without orders is a NotFound condition.
func (s *Service) TodayRevenue(now time.Time, page, limit int) (RevenueResponse, error) {
	orders, total, err := s.repo.ListCreatedOn(now, page, limit)
	if err != nil {
		return RevenueResponse{}, err
	}
	if len(orders) == 0 {
		return RevenueResponse{}, ErrNoOrdersToday
	}

	revenue := 0.0
	for _, ord := range orders {
		revenue += ord.TotalPayment
	}

	return RevenueResponse{
		Orders:       orders,
		Total:        total,
		TotalRevenue: revenue,
	}, nil
}

func paginate(orders []Order, page, limit int) []Order {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}

	start := page * limit
	if start >= len(orders) {
		return []Order{}
	}
	end := start + limit
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end]
}

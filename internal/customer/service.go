package customer

// ServiceInterface is what the order workflow depends on for customer
// existence checks.
type ServiceInterface interface {
	List(params ListParams) ([]Customer, error)
	Count(params ListParams) (int, error)
	GetByID(id int) (Customer, error)
	GetByPhoneNumber(phone string) (Customer, error)
	Create(customer Customer) (Customer, error)
	Update(id int, customer Customer) (Customer, error)
	Delete(id int) error
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(params ListParams) ([]Customer, error) {
	return s.repo.List(params)
}

func (s *Service) Count(params ListParams) (int, error) {
	return s.repo.Count(params)
}

func (s *Service) GetByID(id int) (Customer, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByPhoneNumber(phone string) (Customer, error) {
	return s.repo.GetByPhoneNumber(phone)
}

func (s *Service) Create(customer Customer) (Customer, error) {
	if customer.Phone != "" {
		if _, err := s.repo.GetByPhoneNumber(customer.Phone); err == nil {
			return Customer{}, ErrPhoneExists
		} else if err != ErrNotFound {
			return Customer{}, err
		}
	}
	return s.repo.Create(customer)
}

func (s *Service) Update(id int, customer Customer) (Customer, error) {
	return s.repo.Update(id, customer)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

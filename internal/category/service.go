package category

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(page, limit int, search string) ([]Category, error) {
	return s.repo.List(page, limit, search)
}

func (s *Service) Count(search string) (int, error) {
	return s.repo.Count(search)
}

func (s *Service) GetByID(id int) (Category, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(cat Category) (Category, error) {
	return s.repo.Create(cat)
}

func (s *Service) Update(id int, cat Category) (Category, error) {
	return s.repo.Update(id, cat)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

package brand

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(page, limit int, search string) ([]Brand, error) {
	return s.repo.List(page, limit, search)
}

func (s *Service) Count(search string) (int, error) {
	return s.repo.Count(search)
}

func (s *Service) GetByID(id int) (Brand, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(b Brand) (Brand, error) {
	return s.repo.Create(b)
}

func (s *Service) Update(id int, b Brand) (Brand, error) {
	return s.repo.Update(id, b)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

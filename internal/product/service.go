package product

import "github.com/shopspring/decimal"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(category string) ([]Product, error) {
	return s.repo.List(category)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

// UpdateParams carries a partial update; nil fields keep their prior value.
type UpdateParams struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Category    *string
	ImageURL    *string
}

func (s *Service) Update(id int, params UpdateParams) (Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}

	if params.Name != nil {
		existing.Name = *params.Name
	}
	if params.Description != nil {
		existing.Description = params.Description
	}
	if params.Price != nil {
		existing.Price = *params.Price
	}
	if params.Stock != nil {
		existing.Stock = *params.Stock
	}
	if params.Category != nil {
		existing.Category = *params.Category
	}
	if params.ImageURL != nil {
		existing.ImageURL = params.ImageURL
	}

	return s.repo.Update(id, existing)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

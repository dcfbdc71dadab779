package presenter

import "github.com/minhquangvu/store-backoffice/internal/domain/entity"

// CustomerPresenter shapes domain entities for delivery layer responses.
type CustomerPresenter struct{}

func NewCustomerPresenter() *CustomerPresenter {
	return &CustomerPresenter{}
}

type CustomerResponse struct {
	ID             int64   `json:"customer_id"`
	Code           string  `json:"customer_code"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email,omitempty"`
	Address        string  `json:"address,omitempty"`
	NumberOfOrders int     `json:"number_of_orders"`
	TotalExpense   float64 `json:"total_expense"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func (p *CustomerPresenter) ToResponse(customer *entity.Customer) *CustomerResponse {
	if customer == nil {
		return nil
	}
	return &CustomerResponse{
		ID:             customer.ID,
		Code:           customer.Code,
		Name:           customer.Name,
		Phone:          customer.Phone,
		Email:          customer.Email,
		Address:        customer.Address,
		NumberOfOrders: customer.NumberOfOrders,
		TotalExpense:   customer.TotalExpense,
		CreatedAt:      customer.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      customer.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (p *CustomerPresenter) ToList(customers []*entity.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		result = append(result, p.ToResponse(customer))
	}
	return result
}

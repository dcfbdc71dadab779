package customer

// Customer is a buyer record. NumberOfOrders and TotalExpense are running
// aggregates maintained by the order workflow; TotalExpense stays nil until
// the first completed order.
type Customer struct {
	ID             int      `json:"customerId"`
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	Phone          string   `json:"phoneNumber"`
	Email          string   `json:"email,omitempty"`
	Address        string   `json:"address,omitempty"`
	NumberOfOrders int      `json:"numberOfOrder"`
	TotalExpense   *float64 `json:"totalExpense,omitempty"`
	CreatedAt      string   `json:"createdOn,omitempty"`
	UpdatedAt      string   `json:"updatedOn,omitempty"`
}

// ListParams carries pagination and search options for customer listings.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) normalized() ListParams {
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Page < 0 {
		p.Page = 0
	}
	return p
}

package category

// Category groups products for filtering and reporting.
type Category struct {
	ID          int    `json:"categoryId"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdOn,omitempty"`
	UpdatedAt   string `json:"updatedOn,omitempty"`
}

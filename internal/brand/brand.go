package brand

type Brand struct {
	ID          int    `json:"brandId"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdOn,omitempty"`
	UpdatedAt   string `json:"updatedOn,omitempty"`
}

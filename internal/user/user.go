package user

// User is a staff account that can sign in to the back office and create
// orders. Roles gate what the frontend shows; the API only distinguishes
// authenticated vs not.
type User struct {
	ID        int      `json:"userId"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password,omitempty"`
	Phone     string   `json:"phoneNumber"`
	Roles     []string `json:"roles,omitempty"`
	CreatedAt string   `json:"createdOn,omitempty"`
	UpdatedAt string   `json:"updatedOn,omitempty"`
}

// ListParams carries pagination, sorting and filtering options for user
// listings. Zero values mean "no filter"; Limit defaults to 10.
type ListParams struct {
	Page   int
	Limit  int
	Sort   string
	Order  string
	Role   string
	Search string
}

func (p ListParams) normalized() ListParams {
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Page < 0 {
		p.Page = 0
	}
	switch p.Sort {
	case "name", "email", "created_on":
	default:
		p.Sort = "name"
	}
	if p.Order != "desc" {
		p.Order = "asc"
	}
	return p
}

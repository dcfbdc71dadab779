package order

import "time"

// Repository defines persistence operations for orders. Create runs the
// whole assembly workflow as one atomic unit; there is never a partially
// persisted order.
type Repository interface {
	Create(req CreateOrderRequest) (OrderDetailResponse, error)
	GetByID(id int) (OrderDetailResponse, error)

	// ListByDateAndCode returns all orders created in [start, end] whose
	// code contains the given substring, newest first. Pagination over
	// this result happens in the service.
	ListByDateAndCode(start, end time.Time, code string) ([]Order, error)

	// ListCreatedOn returns one page of orders created on the given day
	// plus the total number of such orders.
	ListCreatedOn(day time.Time, page, limit int) ([]Order, int, error)
}

package order

import (
	"errors"
	"fmt"
	"time"
)

// CodePrefix starts every generated order code. The full code is the prefix
// plus the order id zero-padded to five digits, e.g. id 42 -> SON00042.
const CodePrefix = "SON"

// Order is the persisted header of a sale.
type Order struct {
	ID            int       `json:"orderId"`
	Code          string    `json:"code"`
	CustomerID    int       `json:"customerId"`
	CreatorID     int       `json:"creatorId"`
	TotalQuantity int       `json:"totalQuantity"`
	TotalPayment  float64   `json:"totalPayment"`
	CashReceive   float64   `json:"cashReceive"`
	CashRepay     float64   `json:"cashRepay"`
	PaymentType   string    `json:"paymentType,omitempty"`
	Note          string    `json:"note,omitempty"`
	CreatedOn     time.Time `json:"createdOn"`
}

// OrderDetail is one line of an order. Rows are written once at order
// creation and never mutated afterwards.
type OrderDetail struct {
	ID        int     `json:"orderDetailId"`
	OrderID   int     `json:"orderId"`
	VariantID int     `json:"variantId"`
	Quantity  int     `json:"quantity"`
	SubTotal  float64 `json:"subTotal"`
}

// LineItemRequest is one requested (variant, quantity, subtotal) tuple.
type LineItemRequest struct {
	VariantID int     `json:"variantId"`
	Quantity  int     `json:"quantity"`
	SubTotal  float64 `json:"subTotal"`
}

// CreateOrderRequest is the structured input of the order assembly workflow.
type CreateOrderRequest struct {
	CustomerID    int               `json:"customerId"`
	CreatorID     int               `json:"creatorId"`
	TotalQuantity int               `json:"totalQuantity"`
	TotalPayment  float64           `json:"totalPayment"`
	CashReceive   float64           `json:"cashReceive"`
	CashRepay     float64           `json:"cashRepay"`
	PaymentType   string            `json:"paymentType"`
	Note          string            `json:"note"`
	LineItems     []LineItemRequest `json:"orderLineItems"`
}

// OrderDetailResponse is an order header with its line items, read back from
// the store after creation or on demand.
type OrderDetailResponse struct {
	Order
	Details []OrderDetail `json:"orderDetails"`
}

// RevenueResponse carries one page of today's orders plus the revenue summed
// over that page.
type RevenueResponse struct {
	Orders       []Order `json:"orders"`
	Total        int     `json:"total"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// NotFound family: the referenced entity does not exist.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCreatorNotFound  = errors.New("creator not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrNoOrdersToday    = errors.New("no orders today")
)

// InvalidOrder family: the request itself is unacceptable.
var (
	ErrNoLineItems       = errors.New("order has no line items")
	ErrInsufficientCash  = errors.New("cash received is less than total payment")
	ErrNegativeQuantity  = errors.New("line item quantity is negative")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// IsNotFound reports whether err means a referenced entity is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrCreatorNotFound) ||
		errors.Is(err, ErrVariantNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrNoOrdersToday)
}

// IsInvalidOrder reports whether err means the request was rejected by a
// business rule.
func IsInvalidOrder(err error) bool {
	return errors.Is(err, ErrNoLineItems) ||
		errors.Is(err, ErrInsufficientCash) ||
		errors.Is(err, ErrNegativeQuantity) ||
		errors.Is(err, ErrInsufficientStock)
}

// FormatCode renders the human-readable code for an order id.
func FormatCode(id int) string {
	return fmt.Sprintf("%s%05d", CodePrefix, id)
}

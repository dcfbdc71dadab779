package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhquangvu/store-backoffice/internal/customer"
	"github.com/minhquangvu/store-backoffice/internal/user"
)

type fakeRepo struct {
	created    []CreateOrderRequest
	createResp OrderDetailResponse
	orders     []Order
	dayOrders  []Order
	dayTotal   int
}

func (f *fakeRepo) Create(req CreateOrderRequest) (OrderDetailResponse, error) {
	f.created = append(f.created, req)
	return f.createResp, nil
}

func (f *fakeRepo) GetByID(id int) (OrderDetailResponse, error) {
	return f.createResp, nil
}

func (f *fakeRepo) ListByDateAndCode(start, end time.Time, code string) ([]Order, error) {
	return f.orders, nil
}

func (f *fakeRepo) ListCreatedOn(day time.Time, page, limit int) ([]Order, int, error) {
	return f.dayOrders, f.dayTotal, nil
}

var _ Repository = (*fakeRepo)(nil)

type fakeCustomers struct {
	known map[int]customer.Customer
}

func (f *fakeCustomers) GetByID(id int) (customer.Customer, error) {
	c, ok := f.known[id]
	if !ok {
		return customer.Customer{}, customer.ErrNotFound
	}
	return c, nil
}

type fakeUsers struct {
	known map[int]user.User
}

func (f *fakeUsers) GetByID(id int) (user.User, error) {
	u, ok := f.known[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func newTestService(repo *fakeRepo) *Service {
	customers := &fakeCustomers{known: map[int]customer.Customer{2: {ID: 2, Name: "Jane"}}}
	users := &fakeUsers{known: map[int]user.User{1: {ID: 1, Name: "Staff"}}}
	return NewService(repo, customers, users)
}

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerID:    2,
		CreatorID:     1,
		TotalQuantity: 3,
		TotalPayment:  150,
		CashReceive:   200,
		CashRepay:     50,
		LineItems:     []LineItemRequest{{VariantID: 7, Quantity: 3, SubTotal: 150}},
	}
}

func TestServiceCreate_Valid(t *testing.T) {
	repo := &fakeRepo{createResp: OrderDetailResponse{Order: Order{ID: 42, Code: "SON00042"}}}
	svc := newTestService(repo)

	resp, err := svc.Create(validRequest())
	require.NoError(t, err)
	assert.Equal(t, "SON00042", resp.Code)
	require.Len(t, repo.created, 1)
}

func TestServiceCreate_UnknownCustomer(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	req := validRequest()
	req.CustomerID = 999

	_, err := svc.Create(req)
	require.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Empty(t, repo.created, "nothing may be persisted when validation fails")
}

func TestServiceCreate_UnknownCreator(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	req := validRequest()
	req.CreatorID = 999

	_, err := svc.Create(req)
	require.ErrorIs(t, err, ErrCreatorNotFound)
	assert.Empty(t, repo.created)
}

func TestServiceCreate_EmptyLineItems(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	req := validRequest()
	req.LineItems = nil

	_, err := svc.Create(req)
	require.ErrorIs(t, err, ErrNoLineItems)
	assert.Empty(t, repo.created)
}

func TestServiceCreate_CashBelowPayment(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	req := validRequest()
	req.TotalPayment = 150
	req.CashReceive = 100

	_, err := svc.Create(req)
	require.ErrorIs(t, err, ErrInsufficientCash)
	assert.Empty(t, repo.created, "nothing may be persisted when cash is short")
}

func TestServiceCreate_CashEqualToPaymentPasses(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	req := validRequest()
	req.CashReceive = req.TotalPayment

	_, err := svc.Create(req)
	require.NoError(t, err)
}

func TestServiceList_Paginates(t *testing.T) {
	orders := make([]Order, 0, 25)
	for i := 25; i >= 1; i-- {
		orders = append(orders, Order{ID: i, Code: FormatCode(i)})
	}
	repo := &fakeRepo{orders: orders}
	svc := newTestService(repo)

	page0, err := svc.List(0, 10, "", time.Time{}, time.Now())
	require.NoError(t, err)
	require.Len(t, page0, 10)
	assert.Equal(t, 25, page0[0].ID, "newest first")

	page2, err := svc.List(2, 10, "", time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Len(t, page2, 5)

	beyond, err := svc.List(9, 10, "", time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, beyond)

	count, err := svc.Count("", time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 25, count)
}

func TestTodayRevenue_SumsPage(t *testing.T) {
	repo := &fakeRepo{
		dayOrders: []Order{
			{ID: 1, TotalPayment: 20},
			{ID: 2, TotalPayment: 30},
		},
		dayTotal: 2,
	}
	svc := newTestService(repo)

	resp, err := svc.TodayRevenue(time.Now(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.TotalRevenue)
	assert.Equal(t, 2, resp.Total)
}

func TestTodayRevenue_EmptyDay(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	_, err := svc.TodayRevenue(time.Now(), 0, 10)
	require.ErrorIs(t, err, ErrNoOrdersToday)
}

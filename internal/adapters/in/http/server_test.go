package http_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubOrderRepository struct {
	mock.Mock
}

func (m *stubOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *stubOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *stubOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *stubOrderRepository) GetAllPendingUnpaidBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

// stubUoW is a unit of work whose transaction management is a no-op, backed
// by a mocked repository.
type stubUoW struct {
	repo ports.OrderRepository
}

func (u *stubUoW) Begin(_ context.Context) error    { return nil }
func (u *stubUoW) Commit(_ context.Context) error   { return nil }
func (u *stubUoW) Rollback(_ context.Context) error { return nil }
func (u *stubUoW) OrderRepository() ports.OrderRepository {
	return u.repo
}

type stubUoWFactory struct {
	uow *stubUoW
}

func (f *stubUoWFactory) Create() commands.OrderUoW {
	return f.uow
}

type stubPublisher struct{}

func (p *stubPublisher) Publish(_ context.Context, _ string, _ any) error { return nil }

type serverFixture struct {
	server *httpadapter.Server
	echo   *echo.Echo
	repo   *stubOrderRepository
}

func newServerFixture() *serverFixture {
	repo := new(stubOrderRepository)
	factory := &stubUoWFactory{uow: &stubUoW{repo: repo}}
	publisher := &stubPublisher{}
	logger := slog.New(slog.DiscardHandler)

	server := httpadapter.NewServer(
		commands.NewCreateOrderCommandHandler(factory, publisher, logger),
		commands.NewUpdateOrderStatusCommandHandler(factory, publisher, logger),
		commands.NewConfirmPaymentCommandHandler(factory, publisher, logger),
		commands.NewExpirePaymentSessionCommandHandler(factory, publisher, logger),
		commands.NewAssignCourierCommandHandler(factory, publisher, logger),
		commands.NewVerifyDeliveryPinCommandHandler(factory, publisher, logger),
		commands.NewCancelOrderCommandHandler(factory, publisher, logger),
		queries.GetOrderQueryHandler{},
		queries.GetActiveOrdersQueryHandler{},
	)

	e := echo.New()
	server.RegisterRoutes(e)

	return &serverFixture{server: server, echo: e, repo: repo}
}

func (f *serverFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem("dish-1", "Margherita", 2, decimal.NewFromInt(11))
	require.NoError(t, err)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), "customer-1", "restaurant-1", "Pizza Palace",
		[]order.Item{item}, decimal.NewFromInt(3), false,
	)
	require.NoError(t, err)
	return aggregate
}

func TestHealth(t *testing.T) {
	f := newServerFixture()
	rec := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestCreateOrder_Success(t *testing.T) {
	f := newServerFixture()
	f.repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", `{
		"customer_id": "customer-1",
		"restaurant_id": "restaurant-1",
		"restaurant_name": "Pizza Palace",
		"items": [{"dish_id": "dish-1", "name": "Margherita", "quantity": 2, "price": "11"}],
		"delivery_fee": "3",
		"use_loyalty_points": false
	}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "order_id")
	f.repo.AssertExpectations(t)
}

func TestCreateOrder_MissingItems_Returns400(t *testing.T) {
	f := newServerFixture()

	rec := f.do(http.MethodPost, "/api/v1/orders", `{
		"customer_id": "customer-1",
		"restaurant_id": "restaurant-1",
		"restaurant_name": "Pizza Palace",
		"items": [],
		"delivery_fee": "3"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_MalformedBody_Returns400(t *testing.T) {
	f := newServerFixture()
	rec := f.do(http.MethodPost, "/api/v1/orders", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatus_Success(t *testing.T) {
	f := newServerFixture()
	aggregate := pendingOrder(t)
	require.NoError(t, aggregate.TransitionTo(order.Confirmed))

	f.repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	f.repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+aggregate.ID().String()+"/status",
		`{"status": "PREPARING"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, order.Preparing, aggregate.Status())
}

func TestUpdateOrderStatus_InvalidTransition_Returns409(t *testing.T) {
	f := newServerFixture()
	aggregate := pendingOrder(t)

	f.repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+aggregate.ID().String()+"/status",
		`{"status": "DELIVERED"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot move order")
}

func TestUpdateOrderStatus_UnknownOrder_Returns404(t *testing.T) {
	f := newServerFixture()
	id := kernel.NewUUID()

	f.repo.On("Get", mock.Anything, id).
		Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+id.String()+"/status",
		`{"status": "PREPARING"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatus_UnknownStatus_Returns400(t *testing.T) {
	f := newServerFixture()
	rec := f.do(http.MethodPatch, "/api/v1/orders/"+kernel.NewUUID().String()+"/status",
		`{"status": "TELEPORTED"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatus_InvalidID_Returns400(t *testing.T) {
	f := newServerFixture()
	rec := f.do(http.MethodPatch, "/api/v1/orders/not-a-uuid/status", `{"status": "PREPARING"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignCourier_Reassignment_Returns409(t *testing.T) {
	f := newServerFixture()
	aggregate := pendingOrder(t)
	require.NoError(t, aggregate.AssignCourier("courier-7", order.NewRandomPinCode()))

	f.repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/"+aggregate.ID().String()+"/courier",
		`{"courier_id": "courier-8"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAssignCourier_Success(t *testing.T) {
	f := newServerFixture()
	aggregate := pendingOrder(t)

	f.repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	f.repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/"+aggregate.ID().String()+"/courier",
		`{"courier_id": "courier-7"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "courier-7", aggregate.CourierID())
}

func TestVerifyPin_WrongPin_Returns200WithNegativeResult(t *testing.T) {
	f := newServerFixture()
	aggregate := pendingOrder(t)
	pin, err := order.PinCodeFromString("4821")
	require.NoError(t, err)
	require.NoError(t, aggregate.AssignCourier("courier-7", pin))

	f.repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/"+aggregate.ID().String()+"/verify-pin",
		`{"pin": "9999"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"verified":false`)
}

func TestVerifyPin_UnknownOrder_Returns404(t *testing.T) {
	f := newServerFixture()
	id := kernel.NewUUID()

	f.repo.On("Get", mock.Anything, id).
		Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/"+id.String()+"/verify-pin", `{"pin": "4821"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelOrder_Success(t *testing.T) {
	f := newServerFixture()
	aggregate := pendingOrder(t)

	f.repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	f.repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	rec := f.do(http.MethodDelete, "/api/v1/orders/"+aggregate.ID().String(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, order.Cancelled, aggregate.Status())
}

func TestCancelOrder_UnknownOrder_Returns404(t *testing.T) {
	f := newServerFixture()
	id := kernel.NewUUID()

	f.repo.On("Get", mock.Anything, id).
		Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

	rec := f.do(http.MethodDelete, "/api/v1/orders/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentSucceeded_Returns202(t *testing.T) {
	f := newServerFixture()
	aggregate := pendingOrder(t)

	f.repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	f.repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/payments/succeeded",
		`{"order_id": "`+aggregate.ID().String()+`", "charge_reference": "ch_123", "receipt_url": "https://pay.example/r/1"}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, aggregate.IsPaid())
}

func TestPaymentSucceeded_UnknownOrder_Returns202(t *testing.T) {
	f := newServerFixture()
	id := kernel.NewUUID()

	// a racing notification for an order not yet visible is accepted and dropped
	f.repo.On("Get", mock.Anything, id).
		Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

	rec := f.do(http.MethodPost, "/api/v1/payments/succeeded",
		`{"order_id": "`+id.String()+`", "charge_reference": "ch_123", "receipt_url": "https://pay.example/r/1"}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestPaymentSessionExpired_Returns202(t *testing.T) {
	f := newServerFixture()
	aggregate := pendingOrder(t)

	f.repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	f.repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/payments/expired",
		`{"order_id": "`+aggregate.ID().String()+`"}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, order.Failed, aggregate.Status())
}

func TestRepositoryFailure_Returns500(t *testing.T) {
	f := newServerFixture()
	id := kernel.NewUUID()

	f.repo.On("Get", mock.Anything, id).Return(nil, errors.New("connection refused")).Once()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+id.String()+"/status", `{"status": "PREPARING"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal error")
}

// Package http exposes the order lifecycle over a REST API built on echo.
// It translates HTTP requests into commands and queries, and domain errors
// into status codes: unknown order 404, rejected state change 409,
// malformed input 400.
package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	confirmPaymentHandler    commands.ConfirmPaymentCommandHandler
	expireSessionHandler     commands.ExpirePaymentSessionCommandHandler
	assignCourierHandler     commands.AssignCourierCommandHandler
	verifyPinHandler         commands.VerifyDeliveryPinCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler

	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	expireSessionHandler commands.ExpirePaymentSessionCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	verifyPinHandler commands.VerifyDeliveryPinCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		confirmPaymentHandler:    confirmPaymentHandler,
		expireSessionHandler:     expireSessionHandler,
		assignCourierHandler:     assignCourierHandler,
		verifyPinHandler:         verifyPinHandler,
		cancelOrderHandler:       cancelOrderHandler,
		getOrderHandler:          getOrderHandler,
		getActiveOrdersHandler:   getActiveOrdersHandler,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1 plus the health probe.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/active", s.GetActiveOrders)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	v1.POST("/orders/:id/courier", s.AssignCourier)
	v1.POST("/orders/:id/verify-pin", s.VerifyPin)
	v1.DELETE("/orders/:id", s.CancelOrder)
	v1.POST("/payments/succeeded", s.PaymentSucceeded)
	v1.POST("/payments/expired", s.PaymentSessionExpired)
	v1.POST("/payments/abandoned", s.PaymentSessionAbandoned)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, reqItem := range req.Items {
		item, err := order.NewItem(reqItem.DishID, reqItem.Name, reqItem.Quantity, reqItem.Price)
		if err != nil {
			return badRequest(ctx, "invalid order item: "+err.Error())
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.CustomerID, req.RestaurantID, req.RestaurantName,
		items, req.DeliveryFee, req.UseLoyaltyPoints,
	)
	if err != nil {
		return badRequest(ctx, "invalid order data: "+err.Error())
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{OrderID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromQuery(resp))
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	resp, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummariesFromQuery(resp))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req StatusUpdate
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "unknown status: "+req.Status)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target, req.Location)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignCourier handles POST /api/v1/orders/:id/courier.
//
// Courier notifications for unknown orders are swallowed by the use case, so
// this endpoint answers 204 even when the order has not propagated yet;
// re-assignment of an already-assigned order answers 409.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req CourierAssignment
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, req.CourierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerifyPin handles POST /api/v1/orders/:id/verify-pin.
func (s *Server) VerifyPin(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req PinVerification
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewVerifyDeliveryPinCommand(orderID, req.Pin)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	verified, err := s.verifyPinHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PinVerificationResult{Verified: verified})
}

// CancelOrder handles DELETE /api/v1/orders/:id.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PaymentSucceeded handles POST /api/v1/payments/succeeded, the webhook
// fallback to the Redis payment channel. Accepted notifications answer 202:
// processing outcome is not the provider's concern.
func (s *Server) PaymentSucceeded(ctx echo.Context) error {
	var req PaymentSucceeded
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, req.ChargeReference, req.ReceiptURL)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// PaymentSessionExpired handles POST /api/v1/payments/expired.
func (s *Server) PaymentSessionExpired(ctx echo.Context) error {
	return s.paymentSessionEnded(ctx)
}

// PaymentSessionAbandoned handles POST /api/v1/payments/abandoned.
// An abandoned session ends the order the same way an expired one does.
func (s *Server) PaymentSessionAbandoned(ctx echo.Context) error {
	return s.paymentSessionEnded(ctx)
}

func (s *Server) paymentSessionEnded(ctx echo.Context) error {
	var req PaymentSessionEnded
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewExpirePaymentSessionCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.expireSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps use case failures onto status codes.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "order not found",
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrCourierAlreadyAssigned),
		errors.Is(err, order.ErrPaymentAlreadyConfirmed):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

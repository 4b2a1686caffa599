// Package http exposes the order lifecycle over REST and streams order
// events to clients via server-sent events.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/notifications"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderFromCartCommandHandler
	changeStatusHandler  commands.ChangeOrderStatusCommandHandler
	assignCourierHandler commands.AssignCourierCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	hub *notifications.Hub
}

// NewServer creates an HTTP server with the required command and query
// handlers and the hub clients subscribe to.
func NewServer(
	createOrderHandler commands.CreateOrderFromCartCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	hub *notifications.Hub,
) *Server {
	return &Server{
		createOrderHandler:   createOrderHandler,
		changeStatusHandler:  changeStatusHandler,
		assignCourierHandler: assignCourierHandler,
		getOrderHandler:      getOrderHandler,
		listOrdersHandler:    listOrdersHandler,
		hub:                  hub,
	}
}

// RegisterRoutes attaches all order routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/orders", s.ListOrders)
	e.GET("/orders/stream", s.StreamOrders)
	e.GET("/orders/:id", s.GetOrder)
	e.POST("/orders/from-cart", s.CreateOrderFromCart)
	e.PUT("/orders/:id/accept", s.AcceptOrder)
	e.PUT("/orders/:id/assign-courier", s.AssignCourier)
	e.PUT("/orders/:id/start-delivery", s.StartDelivery)
	e.PUT("/orders/:id/deliver", s.DeliverOrder)
	e.PUT("/orders/:id/cancel", s.CancelOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ListOrders handles GET /orders with optional customerId and
// restaurantId filters, newest first.
func (s *Server) ListOrders(ctx echo.Context) error {
	var restaurantID *kernel.UUID
	if raw := ctx.QueryParam("restaurantId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "restaurantId must be a valid UUID")
		}
		restaurantID = &id
	}

	query, err := queries.NewListOrdersQuery(ctx.QueryParam("customerId"), restaurantID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	results, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]orderResponse, 0, len(results))
	for _, result := range results {
		response = append(response, toOrderResponse(result))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "order ID must be a valid UUID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(result))
}

// CreateOrderFromCart handles POST /orders/from-cart. The created order
// snapshot is returned with 201.
func (s *Server) CreateOrderFromCart(ctx echo.Context) error {
	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(request.RestaurantID)
	if err != nil {
		return badRequest(ctx, "restaurantId must be a valid UUID")
	}

	lines := make([]order.Line, 0, len(request.Lines))
	for _, lineReq := range request.Lines {
		menuItemID, idErr := kernel.UUIDFromString(lineReq.MenuItemID)
		if idErr != nil {
			return badRequest(ctx, "menuItemId must be a valid UUID")
		}

		line, lineErr := order.NewLine(menuItemID, lineReq.Name, lineReq.UnitPrice, lineReq.Quantity)
		if lineErr != nil {
			return errorResponse(ctx, lineErr)
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewCreateOrderFromCartCommand(request.CustomerID, restaurantID, lines)
	if err != nil {
		return errorResponse(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, created.Snapshot())
}

// AcceptOrder handles PUT /orders/:id/accept, moving the order to
// Preparing.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	return s.changeStatus(ctx, order.Preparing)
}

// StartDelivery handles PUT /orders/:id/start-delivery, moving the order
// to OnTheWay.
func (s *Server) StartDelivery(ctx echo.Context) error {
	return s.changeStatus(ctx, order.OnTheWay)
}

// DeliverOrder handles PUT /orders/:id/deliver, moving the order to
// Delivered.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	return s.changeStatus(ctx, order.Delivered)
}

// CancelOrder handles PUT /orders/:id/cancel, moving the order to
// Cancelled.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.changeStatus(ctx, order.Cancelled)
}

// AssignCourier handles PUT /orders/:id/assign-courier.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "order ID must be a valid UUID")
	}

	var request assignCourierRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return badRequest(ctx, "courierId must be a valid UUID")
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if _, err = s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StreamOrders handles GET /orders/stream. Events are written as SSE
// frames until the client disconnects.
func (s *Server) StreamOrders(ctx echo.Context) error {
	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	sub := s.hub.Subscribe()
	defer s.hub.Unsubscribe(sub.ID())

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil
		case event := <-sub.Events():
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err = fmt.Fprintf(response, "event: %s\ndata: %s\n\n", event.Name, payload); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}

func (s *Server) changeStatus(ctx echo.Context, target order.Status) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "order ID must be a valid UUID")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if _, err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func parseOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application errors to HTTP statuses: unknown IDs to
// 404, rejected transitions and validation failures to 400, everything
// else to 500.
func errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrCourierIsRequired),
		errors.Is(err, commands.ErrEmptyCart),
		errors.Is(err, commands.ErrCustomerIDIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}

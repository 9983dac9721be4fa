package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"ordermgmt/internal/core/application/usecases/commands"
	"ordermgmt/internal/core/application/usecases/queries"
	"ordermgmt/internal/core/domain/model/kernel"
	"ordermgmt/internal/pkg/errs"
)

// Handler slices consumed by the server, kept narrow so tests can substitute
// the application layer.
type (
	submitOrderHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitOrderCommand) (kernel.UUID, error)
	}

	deleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}

	getAllOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderResponse, error)
	}

	getOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
	}
)

// Server handles the order management REST API.
type Server struct {
	submitOrder submitOrderHandler
	deleteOrder deleteOrderHandler
	getAll      getAllOrdersHandler
	getByID     getOrderHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	submitOrder submitOrderHandler,
	deleteOrder deleteOrderHandler,
	getAll getAllOrdersHandler,
	getByID getOrderHandler,
) *Server {
	return &Server{
		submitOrder: submitOrder,
		deleteOrder: deleteOrder,
		getAll:      getAll,
		getByID:     getByID,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.DELETE("/orders/:orderId", s.DeleteOrder)
}

// SubmitOrder handles POST /api/v1/orders.
//
//	@Summary		Submit an order
//	@Description	Persists a new order and queues it for asynchronous fulfillment
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		SubmitOrderRequest	true	"Order to submit"
//	@Success		201		{object}	SubmitOrderResponse
//	@Header			201		{string}	Location	"URL of the created order"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/orders [post]
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req SubmitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSubmitOrderCommand(req.Customer, req.Product, req.Amount)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	id, err := s.submitOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		var invalid *errs.ValueIsInvalidError
		var outOfRange *errs.ValueIsOutOfRangeError
		if errors.As(err, &invalid) || errors.As(err, &outOfRange) {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid order data: " + err.Error(),
			})
		}

		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to submit order",
		})
	}

	ctx.Response().Header().Set(echo.HeaderLocation, "/api/v1/orders/"+id.String())
	return ctx.JSON(http.StatusCreated, SubmitOrderResponse{ID: id.String()})
}

// GetOrders handles GET /api/v1/orders.
//
//	@Summary	List orders
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}		OrderResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/orders [get]
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.getAll.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = toOrderResponse(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
//
//	@Summary	Get an order
//	@Tags		orders
//	@Produce	json
//	@Param		orderId	path		string	true	"Order ID"
//	@Success	200		{object}	OrderResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/orders/{orderId} [get]
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	resp, err := s.getByID.Handle(ctx.Request().Context(), query)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}

		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(resp))
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
//
//	@Summary	Delete an order
//	@Tags		orders
//	@Produce	json
//	@Param		orderId	path	string	true	"Order ID"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/orders/{orderId} [delete]
func (s *Server) DeleteOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	if err = s.deleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}

		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to delete order",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

package http

import (
	"errors"
	"net/http"
	"strconv"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/application/usecases/queries"
	"courierbot/internal/core/domain/model/courier"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// SubmitOrder handles POST /api/v1/orders. Item names and unit prices are
// taken as sent: the chat side prices the order from its own menu before
// submitting. Carts built through the session endpoints are priced from the
// catalog instead.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req SubmitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]order.Item, 0, len(req.Items))
	var errList []error
	for _, it := range req.Items {
		item, err := order.NewItem(it.Name, it.Quantity, it.UnitPrice)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSubmitOrderCommand(
		order.Customer{ID: req.CustomerID, Username: req.CustomerUsername},
		items,
		req.Details.toDomain(),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.SubmitOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, newSubmitOrderResponse(result))
}

// FindOrders handles GET /api/v1/orders?delivery_no=NNNNN.
func (s *Server) FindOrders(ctx echo.Context) error {
	query, err := queries.NewFindOrdersByDeliveryNoQuery(ctx.QueryParam("delivery_no"))
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.h.FindOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newOrderDTOs(views))
}

// ListOpenOrders handles GET /api/v1/orders/open.
func (s *Server) ListOpenOrders(ctx echo.Context) error {
	views, err := s.h.ListOpenOrders.Handle(ctx.Request().Context(), queries.NewListOpenOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newOrderDTOs(views))
}

// GetOrder handles GET /api/v1/orders/:display_no. Without ?workday= the
// current workday is searched first, then the previous one.
func (s *Server) GetOrder(ctx echo.Context) error {
	ref, err := orderRef(ctx, ctx.QueryParam("workday"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(ref.Workday, ref.DisplayNo)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newOrderDTO(view))
}

// AcceptOrder handles POST /api/v1/orders/:display_no/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	req, ref, err := s.transitionRequest(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := courier.NewCourier(req.ActorID, req.Username, req.FullName)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAcceptOrderCommand(ref, c)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.AcceptOrder.Handle(ctx.Request().Context(), cmd)
	return s.transitioned(ctx, o, err)
}

// DenyOrder handles POST /api/v1/orders/:display_no/deny.
func (s *Server) DenyOrder(ctx echo.Context) error {
	req, ref, err := s.transitionRequest(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDenyOrderCommand(ref, req.ActorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.DenyOrder.Handle(ctx.Request().Context(), cmd)
	return s.transitioned(ctx, o, err)
}

// DeliverOrder handles POST /api/v1/orders/:display_no/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	req, ref, err := s.transitionRequest(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeliverOrderCommand(ref, req.ActorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.DeliverOrder.Handle(ctx.Request().Context(), cmd)
	return s.transitioned(ctx, o, err)
}

// CancelOrder handles POST /api/v1/orders/:display_no/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	req, ref, err := s.transitionRequest(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(ref, req.ActorID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.CancelOrder.Handle(ctx.Request().Context(), cmd)
	return s.transitioned(ctx, o, err)
}

// transitionRequest binds the body and resolves the order reference. It
// writes nothing; callers report the error through fail.
func (s *Server) transitionRequest(ctx echo.Context) (TransitionRequest, commands.OrderRef, error) {
	var req TransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return req, commands.OrderRef{}, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	ref, err := orderRef(ctx, req.Workday)
	if err != nil {
		return req, commands.OrderRef{}, err
	}
	return req, ref, nil
}

func (s *Server) transitioned(ctx echo.Context, o *order.Order, err error) error {
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"display_no": o.DisplayNo(),
		"workday":    o.Workday().String(),
		"status":     o.Status().String(),
	})
}

func orderRef(ctx echo.Context, workday string) (commands.OrderRef, error) {
	// non-numeric values fail display number validation as 0
	displayNo, _ := strconv.Atoi(ctx.Param("display_no"))
	ref := commands.OrderRef{DisplayNo: displayNo}
	if workday != "" {
		var err error
		if ref.Workday, err = kernel.ParseWorkdayKey(workday); err != nil {
			return commands.OrderRef{}, err
		}
	}
	return ref, nil
}

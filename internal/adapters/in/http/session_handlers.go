package http

import (
	"net/http"
	"strconv"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// AddCartItem handles POST /api/v1/sessions/:user_id/cart/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	userID, ok := userIDParam(ctx)
	if !ok {
		return badRequest(ctx, "Invalid user id")
	}
	var req AddCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddCartItemCommand(order.Customer{ID: userID, Username: req.Username}, req.DrinkID, req.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	summary, err := s.h.AddCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newCartDTO(summary))
}

// ClearCart handles DELETE /api/v1/sessions/:user_id.
func (s *Server) ClearCart(ctx echo.Context) error {
	userID, ok := userIDParam(ctx)
	if !ok {
		return badRequest(ctx, "Invalid user id")
	}

	cmd, err := commands.NewClearCartCommand(userID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.ClearCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/sessions/:user_id/checkout.
func (s *Server) Checkout(ctx echo.Context) error {
	userID, ok := userIDParam(ctx)
	if !ok {
		return badRequest(ctx, "Invalid user id")
	}
	var req CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCheckoutCommand(userID, req.Details.toDomain())
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.Checkout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, newSubmitOrderResponse(result))
}

func userIDParam(ctx echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("user_id"), 10, 64)
	return id, err == nil && id > 0
}

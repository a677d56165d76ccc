package http

import (
	"net/http"
	"strconv"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetBalanceInfo handles GET /api/v1/dispatch/balance.
func (s *Server) GetBalanceInfo(ctx echo.Context) error {
	info, err := s.h.GetBalanceInfo.Handle(ctx.Request().Context(), queries.NewGetBalanceInfoQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newBalanceInfoDTO(info))
}

// SetBalanceLimit handles PUT /api/v1/dispatch/balance-limit.
func (s *Server) SetBalanceLimit(ctx echo.Context) error {
	var req SetBalanceLimitRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetBalanceLimitCommand(req.AdminID, req.Limit)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.SetBalanceLimit.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListInactiveCouriers handles GET /api/v1/couriers/inactive.
func (s *Server) ListInactiveCouriers(ctx echo.Context) error {
	ids, err := s.h.ListInactiveCouriers.Handle(ctx.Request().Context(), queries.NewListInactiveCouriersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ctx.JSON(http.StatusOK, ids)
}

// SetCourierActivity handles PUT /api/v1/couriers/:courier_id/activity.
func (s *Server) SetCourierActivity(ctx echo.Context) error {
	var req SetCourierActivityRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	courierID, err := strconv.ParseInt(ctx.Param("courier_id"), 10, 64)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewSetCourierActivityCommand(req.AdminID, courierID, req.Active)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.SetCourierActivity.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetOrderIntake handles PUT /api/v1/intake.
func (s *Server) SetOrderIntake(ctx echo.Context) error {
	var req SetOrderIntakeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd := commands.NewSetOrderIntakeCommand(req.AdminID, req.Open)
	if err := s.h.SetOrderIntake.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

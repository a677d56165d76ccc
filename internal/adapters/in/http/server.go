package http

import (
	"context"
	"log/slog"
	"net/http"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	SubmitOrder        commands.SubmitOrderCommandHandler
	AcceptOrder        commands.AcceptOrderCommandHandler
	DenyOrder          commands.DenyOrderCommandHandler
	DeliverOrder       commands.DeliverOrderCommandHandler
	CancelOrder        commands.CancelOrderCommandHandler
	SetBalanceLimit    commands.SetBalanceLimitCommandHandler
	SetOrderIntake     commands.SetOrderIntakeCommandHandler
	SetCourierActivity commands.SetCourierActivityCommandHandler
	AddCartItem        commands.AddCartItemCommandHandler
	ClearCart          commands.ClearCartCommandHandler
	Checkout           commands.CheckoutCommandHandler

	// Query handlers
	GetOrder             queries.GetOrderQueryHandler
	ListOpenOrders       queries.ListOpenOrdersQueryHandler
	FindOrders           queries.FindOrdersByDeliveryNoQueryHandler
	GetBalanceInfo       queries.GetBalanceInfoQueryHandler
	ListInactiveCouriers queries.ListInactiveCouriersQueryHandler
}

// Server translates HTTP requests into commands and queries for the
// chat-facing collaborators.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http")}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders", s.FindOrders)
	api.GET("/orders/open", s.ListOpenOrders)
	api.GET("/orders/:display_no", s.GetOrder)
	api.POST("/orders/:display_no/accept", s.AcceptOrder)
	api.POST("/orders/:display_no/deny", s.DenyOrder)
	api.POST("/orders/:display_no/deliver", s.DeliverOrder)
	api.POST("/orders/:display_no/cancel", s.CancelOrder)

	api.GET("/dispatch/balance", s.GetBalanceInfo)
	api.PUT("/dispatch/balance-limit", s.SetBalanceLimit)
	api.GET("/couriers/inactive", s.ListInactiveCouriers)
	api.PUT("/couriers/:courier_id/activity", s.SetCourierActivity)
	api.PUT("/intake", s.SetOrderIntake)

	api.POST("/sessions/:user_id/cart/items", s.AddCartItem)
	api.DELETE("/sessions/:user_id", s.ClearCart)
	api.POST("/sessions/:user_id/checkout", s.Checkout)
}

// NewEcho builds an echo instance with recovery and request logging and the
// server's routes mounted.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.logger.LogAttrs(context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	s.Register(e)
	return e
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

package queries

import (
	"context"
	"errors"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/services"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/guard"
)

var ErrGetBalanceInfoQueryIsNotConstructed = errors.New(
	"GetBalanceInfoQuery must be created via NewGetBalanceInfoQuery constructor",
)

// GetBalanceInfoQuery reports the large-order balance of the current week.
type GetBalanceInfoQuery struct {
	guard guard.ConstructorGuard
}

func NewGetBalanceInfoQuery() GetBalanceInfoQuery {
	return GetBalanceInfoQuery{guard: guard.NewConstructorGuard()}
}

func (q GetBalanceInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetBalanceInfoQueryIsNotConstructed)
}

// GetBalanceInfoQueryHandler reads without the dispatch lock, so the answer
// may trail an acceptance that is committing at the same moment.
type GetBalanceInfoQueryHandler struct {
	readers      DispatchReaderFactory
	clock        ports.Clock
	defaultLimit int
	exemptID     int64
}

func NewGetBalanceInfoQueryHandler(
	readers DispatchReaderFactory,
	clock ports.Clock,
	defaultLimit int,
	exemptID int64,
) GetBalanceInfoQueryHandler {
	return GetBalanceInfoQueryHandler{
		readers:      readers,
		clock:        clock,
		defaultLimit: defaultLimit,
		exemptID:     exemptID,
	}
}

func (h GetBalanceInfoQueryHandler) Handle(ctx context.Context, query GetBalanceInfoQuery) (services.BalanceInfo, error) {
	if err := query.Validate(); err != nil {
		return services.BalanceInfo{}, err
	}

	reader := h.readers.Create()
	week := kernel.NewWorkdayKey(h.clock.Now()).Week()

	counts, err := reader.LargeOrderCountRepository().CountsForWeek(ctx, week)
	if err != nil {
		return services.BalanceInfo{}, err
	}

	inactive, err := reader.CourierActivityRepository().ListInactive(ctx)
	if err != nil {
		return services.BalanceInfo{}, err
	}

	limit, found, err := reader.SettingsRepository().BalanceLimit(ctx)
	if err != nil {
		return services.BalanceInfo{}, err
	}
	if !found {
		limit = h.defaultLimit
	}

	balancer, err := services.NewDispatchBalancer(limit)
	if err != nil {
		return services.BalanceInfo{}, err
	}

	return balancer.Info(services.BalanceSnapshot{
		Week:     week,
		Counts:   counts,
		Inactive: inactive,
		ExemptID: h.exemptID,
	}), nil
}

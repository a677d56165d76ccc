package memory

import (
	"context"
	"maps"
	"slices"
	"strconv"

	"courierbot/internal/core/domain/model/kernel"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

type LargeOrderCountRepository struct {
	uow *UnitOfWork
}

func (r *LargeOrderCountRepository) CountsForWeek(_ context.Context, week kernel.WeekKey) (map[int64]int, error) {
	var counts map[int64]int
	r.uow.store.read(func(st *state) {
		counts = maps.Clone(st.counts[week.String()])
	})
	if counts == nil {
		counts = map[int64]int{}
	}
	return counts, nil
}

func (r *LargeOrderCountRepository) Increment(_ context.Context, week kernel.WeekKey, courierID int64) error {
	return r.uow.write(func(st *state) error {
		m, ok := st.counts[week.String()]
		if !ok {
			m = make(map[int64]int)
			st.counts[week.String()] = m
		}
		m[courierID]++
		return nil
	})
}

type CourierActivityRepository struct {
	uow *UnitOfWork
}

func (r *CourierActivityRepository) MarkInactive(_ context.Context, courierID int64) error {
	return r.uow.write(func(st *state) error {
		st.inactive[courierID] = struct{}{}
		return nil
	})
}

func (r *CourierActivityRepository) MarkActive(_ context.Context, courierID int64) error {
	return r.uow.write(func(st *state) error {
		delete(st.inactive, courierID)
		return nil
	})
}

func (r *CourierActivityRepository) IsActive(_ context.Context, courierID int64) (bool, error) {
	var inactive bool
	r.uow.store.read(func(st *state) {
		_, inactive = st.inactive[courierID]
	})
	return !inactive, nil
}

func (r *CourierActivityRepository) ListInactive(context.Context) ([]int64, error) {
	var ids []int64
	r.uow.store.read(func(st *state) {
		ids = slices.Sorted(maps.Keys(st.inactive))
	})
	return ids, nil
}

type SettingsRepository struct {
	uow *UnitOfWork
}

func (r *SettingsRepository) BalanceLimit(context.Context) (int, bool, error) {
	var limit *int
	r.uow.store.read(func(st *state) {
		limit = st.balanceLimit
	})
	if limit == nil {
		return 0, false, nil
	}
	return *limit, true, nil
}

func (r *SettingsRepository) SetBalanceLimit(_ context.Context, limit int) error {
	return r.uow.write(func(st *state) error {
		st.balanceLimit = &limit
		return nil
	})
}

func (r *SettingsRepository) IntakeOpen(context.Context) (bool, bool, error) {
	var open *bool
	r.uow.store.read(func(st *state) {
		open = st.intakeOpen
	})
	if open == nil {
		return false, false, nil
	}
	return *open, true, nil
}

func (r *SettingsRepository) SetIntakeOpen(_ context.Context, open bool) error {
	return r.uow.write(func(st *state) error {
		st.intakeOpen = &open
		return nil
	})
}

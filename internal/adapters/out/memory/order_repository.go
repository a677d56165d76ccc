package memory

import (
	"context"
	"iter"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"
)

// lastWorkday sorts after every stored workday key.
const lastWorkday = "9999-12-31"

type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) NextDisplayNo(_ context.Context, workday kernel.WorkdayKey) (int, error) {
	if err := workday.Validate(); err != nil {
		return 0, err
	}

	highest := 0
	r.uow.store.read(func(st *state) {
		for k := range st.orders {
			if k.workday == workday.String() && k.displayNo > highest {
				highest = k.displayNo
			}
		}
	})
	return highest + 1, nil
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snap := aggregate.Snapshot()
	key := keyOf(snap.Workday, snap.DisplayNo)
	return r.uow.write(func(st *state) error {
		if _, taken := st.orders[key]; taken {
			return order.ErrDuplicateDisplayNo
		}
		st.orders[key] = snap
		return nil
	})
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snap := aggregate.Snapshot()
	key := keyOf(snap.Workday, snap.DisplayNo)
	return r.uow.write(func(st *state) error {
		stored, ok := st.orders[key]
		if !ok || !stored.ID.IsEqual(snap.ID) {
			return errs.NewObjectNotFoundError("order", snap.ID.String())
		}
		st.orders[key] = snap
		return nil
	})
}

func (r *OrderRepository) Get(_ context.Context, workday kernel.WorkdayKey, displayNo int) (*order.Order, error) {
	var (
		snap order.Snapshot
		ok   bool
	)
	r.uow.store.read(func(st *state) {
		snap, ok = st.orders[keyOf(workday, displayNo)]
	})
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", workday.String()+"#"+itoa(displayNo))
	}
	return order.RestoreOrder(snap)
}

// GetForUpdate is Get: the memory store has no row locks.
func (r *OrderRepository) GetForUpdate(ctx context.Context, workday kernel.WorkdayKey, displayNo int) (*order.Order, error) {
	return r.Get(ctx, workday, displayNo)
}

func (r *OrderRepository) FindByDeliveryNo(_ context.Context, deliveryNo string) ([]*order.Order, error) {
	var snaps []order.Snapshot
	r.uow.store.read(func(st *state) {
		for _, k := range st.sortedKeys("", lastWorkday) {
			if s := st.orders[k]; s.DeliveryNo == deliveryNo {
				snaps = append(snaps, s)
			}
		}
	})
	return restoreAll(snaps)
}

func (r *OrderRepository) ListByStatus(
	_ context.Context,
	from, to kernel.WorkdayKey,
	statuses ...order.Status,
) ([]*order.Order, error) {
	var snaps []order.Snapshot
	r.uow.store.read(func(st *state) {
		for _, k := range st.sortedKeys(from.String(), to.String()) {
			s := st.orders[k]
			for _, status := range statuses {
				if s.Status == status {
					snaps = append(snaps, s)
					break
				}
			}
		}
	})
	return restoreAll(snaps)
}

// Scan iterates over a copy of the range taken when iteration starts.
func (r *OrderRepository) Scan(ctx context.Context, from, to kernel.WorkdayKey) iter.Seq2[*order.Order, error] {
	return func(yield func(*order.Order, error) bool) {
		var snaps []order.Snapshot
		r.uow.store.read(func(st *state) {
			for _, k := range st.sortedKeys(from.String(), to.String()) {
				snaps = append(snaps, st.orders[k])
			}
		})
		for _, s := range snaps {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			o, err := order.RestoreOrder(s)
			if !yield(o, err) || err != nil {
				return
			}
		}
	}
}

func restoreAll(snaps []order.Snapshot) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(snaps))
	for _, s := range snaps {
		o, err := order.RestoreOrder(s)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

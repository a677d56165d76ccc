package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository binds the repository to db, which is either the
// connection pool or an open transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// NextDisplayNo serializes numbering of one workday across processes with a
// transaction-scoped advisory lock. Outside a transaction the lock is released
// at once and only the in-process workday lock protects the numbering.
func (r *GormOrderRepository) NextDisplayNo(ctx context.Context, workday kernel.WorkdayKey) (int, error) {
	if err := workday.Validate(); err != nil {
		return 0, err
	}

	db := r.db.WithContext(ctx)
	if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "orders:"+workday.String()).Error; err != nil {
		return 0, errs.NewPersistenceError("lock workday", err)
	}

	var next int
	err := db.Raw(
		"SELECT COALESCE(MAX(display_no), 0) + 1 FROM orders WHERE workday_key = ?",
		workday.String(),
	).Scan(&next).Error
	if err != nil {
		return 0, errs.NewPersistenceError("next display number", err)
	}
	return next, nil
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return order.ErrDuplicateDisplayNo
		}
		return errs.NewPersistenceError("add order", err)
	}
	return nil
}

// Update overwrites every column of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return nil
}

// Get retrieves an order by its business key.
func (r *GormOrderRepository) Get(ctx context.Context, workday kernel.WorkdayKey, displayNo int) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), workday, displayNo)
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(
	ctx context.Context,
	workday kernel.WorkdayKey,
	displayNo int,
) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), workday, displayNo)
}

func (r *GormOrderRepository) get(db *gorm.DB, workday kernel.WorkdayKey, displayNo int) (*order.Order, error) {
	if err := workday.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := db.First(&dto, "workday_key = ? AND display_no = ?", workday.String(), displayNo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", fmt.Sprintf("%s#%d", workday, displayNo))
		}
		return nil, errs.NewPersistenceError("get order", err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) FindByDeliveryNo(ctx context.Context, deliveryNo string) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("delivery_no = ?", deliveryNo).
		Order("workday_key, display_no").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("find orders by delivery number", err)
	}
	return toDomainAll(dtos)
}

func (r *GormOrderRepository) ListByStatus(
	ctx context.Context,
	from, to kernel.WorkdayKey,
	statuses ...order.Status,
) ([]*order.Order, error) {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("workday_key BETWEEN ? AND ?", from.String(), to.String()).
		Where("status IN ?", names).
		Order("workday_key, display_no").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list orders by status", err)
	}
	return toDomainAll(dtos)
}

// Scan reads rows one at a time. Breaking out of the loop closes the result
// set.
func (r *GormOrderRepository) Scan(ctx context.Context, from, to kernel.WorkdayKey) iter.Seq2[*order.Order, error] {
	return func(yield func(*order.Order, error) bool) {
		db := r.db.WithContext(ctx)
		rows, err := db.Model(&OrderDTO{}).
			Where("workday_key BETWEEN ? AND ?", from.String(), to.String()).
			Order("workday_key, display_no").
			Rows()
		if err != nil {
			yield(nil, errs.NewPersistenceError("scan orders", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var dto OrderDTO
			if err = db.ScanRows(rows, &dto); err != nil {
				yield(nil, errs.NewPersistenceError("scan orders", err))
				return
			}
			o, convErr := toDomain(dto)
			if !yield(o, convErr) || convErr != nil {
				return
			}
		}

		if err = rows.Err(); err != nil {
			yield(nil, errs.NewPersistenceError("scan orders", err))
		}
	}
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

package courierrepo

import (
	"context"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLargeOrderCountRepository implements LargeOrderCountRepository using GORM.
type GormLargeOrderCountRepository struct {
	db *gorm.DB
}

func NewGormLargeOrderCountRepository(db *gorm.DB) *GormLargeOrderCountRepository {
	return &GormLargeOrderCountRepository{db: db}
}

func (r *GormLargeOrderCountRepository) CountsForWeek(ctx context.Context, week kernel.WeekKey) (map[int64]int, error) {
	var dtos []LargeOrderCountDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "week_key = ?", week.String()).Error; err != nil {
		return nil, errs.NewPersistenceError("load large order counts", err)
	}

	counts := make(map[int64]int, len(dtos))
	for _, dto := range dtos {
		counts[dto.CourierID] = dto.Count
	}
	return counts, nil
}

// Increment upserts the counter so that the first large order of a week
// needs no separate insert.
func (r *GormLargeOrderCountRepository) Increment(ctx context.Context, week kernel.WeekKey, courierID int64) error {
	dto := LargeOrderCountDTO{WeekKey: week.String(), CourierID: courierID, Count: 1}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "week_key"}, {Name: "courier_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count": gorm.Expr("courier_large_order_counts.count + 1"),
		}),
	}).Create(&dto).Error
	if err != nil {
		return errs.NewPersistenceError("increment large order count", err)
	}
	return nil
}

// GormCourierActivityRepository implements CourierActivityRepository using GORM.
type GormCourierActivityRepository struct {
	db *gorm.DB
}

func NewGormCourierActivityRepository(db *gorm.DB) *GormCourierActivityRepository {
	return &GormCourierActivityRepository{db: db}
}

func (r *GormCourierActivityRepository) MarkInactive(ctx context.Context, courierID int64) error {
	dto := InactiveCourierDTO{CourierID: courierID, MarkedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
	if err != nil {
		return errs.NewPersistenceError("mark courier inactive", err)
	}
	return nil
}

func (r *GormCourierActivityRepository) MarkActive(ctx context.Context, courierID int64) error {
	err := r.db.WithContext(ctx).Delete(&InactiveCourierDTO{}, "courier_id = ?", courierID).Error
	if err != nil {
		return errs.NewPersistenceError("mark courier active", err)
	}
	return nil
}

func (r *GormCourierActivityRepository) IsActive(ctx context.Context, courierID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&InactiveCourierDTO{}).Where("courier_id = ?", courierID).Count(&n).Error
	if err != nil {
		return false, errs.NewPersistenceError("check courier activity", err)
	}
	return n == 0, nil
}

func (r *GormCourierActivityRepository) ListInactive(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&InactiveCourierDTO{}).Order("courier_id").Pluck("courier_id", &ids).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list inactive couriers", err)
	}
	return ids, nil
}

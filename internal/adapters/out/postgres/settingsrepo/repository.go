// Package settingsrepo stores runtime switches as key/value rows.
package settingsrepo

import (
	"context"
	"errors"
	"strconv"

	"courierbot/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	keyBalanceLimit = "balance_limit"
	keyIntakeOpen   = "order_intake_open"
)

type SettingDTO struct {
	Key   string `gorm:"type:varchar(64);primaryKey"`
	Value string `gorm:"type:text;not null"`
}

func (SettingDTO) TableName() string {
	return "settings"
}

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

func (r *GormSettingsRepository) BalanceLimit(ctx context.Context) (int, bool, error) {
	raw, found, err := r.get(ctx, keyBalanceLimit)
	if err != nil || !found {
		return 0, false, err
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, errs.NewValueIsInvalidErrorWithCause(keyBalanceLimit, err)
	}
	return limit, true, nil
}

func (r *GormSettingsRepository) SetBalanceLimit(ctx context.Context, limit int) error {
	return r.set(ctx, keyBalanceLimit, strconv.Itoa(limit))
}

func (r *GormSettingsRepository) IntakeOpen(ctx context.Context) (bool, bool, error) {
	raw, found, err := r.get(ctx, keyIntakeOpen)
	if err != nil || !found {
		return false, false, err
	}

	open, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, errs.NewValueIsInvalidErrorWithCause(keyIntakeOpen, err)
	}
	return open, true, nil
}

func (r *GormSettingsRepository) SetIntakeOpen(ctx context.Context, open bool) error {
	return r.set(ctx, keyIntakeOpen, strconv.FormatBool(open))
}

func (r *GormSettingsRepository) get(ctx context.Context, key string) (string, bool, error) {
	var dto SettingDTO
	err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.NewPersistenceError("read setting "+key, err)
	}
	return dto.Value, true, nil
}

func (r *GormSettingsRepository) set(ctx context.Context, key, value string) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&SettingDTO{Key: key, Value: value}).Error
	if err != nil {
		return errs.NewPersistenceError("write setting "+key, err)
	}
	return nil
}

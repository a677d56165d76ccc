// Package courierrepo persists dispatch state kept per courier: weekly
// large-order counts and the inactive set.
package courierrepo

import "time"

// LargeOrderCountDTO is one (week, courier) counter.
type LargeOrderCountDTO struct {
	WeekKey   string `gorm:"type:char(8);primaryKey"`
	CourierID int64  `gorm:"primaryKey;autoIncrement:false"`
	Count     int    `gorm:"not null;default:0"`
}

func (LargeOrderCountDTO) TableName() string {
	return "courier_large_order_counts"
}

// InactiveCourierDTO marks a courier as excluded from balancing.
type InactiveCourierDTO struct {
	CourierID int64     `gorm:"primaryKey;autoIncrement:false"`
	MarkedAt  time.Time `gorm:"not null"`
}

func (InactiveCourierDTO) TableName() string {
	return "inactive_couriers"
}

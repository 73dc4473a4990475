package model

import "time"

// 预约状态。
const (
	AppointmentStatusScheduled = "SCHEDULED"
	AppointmentStatusCompleted = "COMPLETED"
	AppointmentStatusCancelled = "CANCELLED"
)

// Appointment 对应于数据库中的 'appointments' 表。
type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OwnerID         uint      `gorm:"index;not null" json:"ownerId"`
	AthleteID       uint      `gorm:"index;not null" json:"athleteId"`
	StartsAt        time.Time `gorm:"index;not null" json:"startsAt"`
	DurationMinutes int       `gorm:"not null;default:30" json:"durationMinutes"`
	Status          string    `gorm:"type:varchar(20);not null;default:'SCHEDULED'" json:"status"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Appointment) TableName() string {
	return "appointments"
}

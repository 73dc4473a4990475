package model

import "time"

// 治疗方案状态。
const (
	TreatmentPlanStatusActive    = "ACTIVE"
	TreatmentPlanStatusCompleted = "COMPLETED"
	TreatmentPlanStatusArchived  = "ARCHIVED"
)

// TreatmentPlan 对应于数据库中的 'treatment_plans' 表。
type TreatmentPlan struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OwnerID     uint       `gorm:"index;not null" json:"ownerId"`
	AthleteID   uint       `gorm:"index;not null" json:"athleteId"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   *time.Time `gorm:"type:date" json:"startDate"`
	EndDate     *time.Time `gorm:"type:date" json:"endDate"`
	Status      string     `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (TreatmentPlan) TableName() string {
	return "treatment_plans"
}

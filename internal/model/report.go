package model

import "time"

// Report 对应于数据库中的 'reports' 表，
// 记录上传到对象存储的运动员报告文件的元数据。
type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"index;not null" json:"ownerId"`
	AthleteID   uint      `gorm:"index;not null" json:"athleteId"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"fileName"`
	ObjectName  string    `gorm:"type:varchar(255);not null" json:"objectName"`
	ContentType string    `gorm:"type:varchar(100)" json:"contentType"`
	SizeBytes   int64     `gorm:"not null" json:"sizeBytes"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Report) TableName() string {
	return "reports"
}

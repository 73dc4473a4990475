package model

import "time"

// Athlete 对应于数据库中的 'athletes' 表，代表一名运动员档案。
// OwnerID 记录创建该档案的临床医生，所有读写都以其为范围。
type Athlete struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	OwnerID   uint       `gorm:"index;not null" json:"ownerId"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Sport     string     `gorm:"type:varchar(50)" json:"sport"`
	BirthDate *time.Time `gorm:"type:date" json:"birthDate"`
	Notes     string     `gorm:"type:text" json:"notes"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Athlete) TableName() string {
	return "athletes"
}

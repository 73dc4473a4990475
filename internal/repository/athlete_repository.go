package repository

import (
	"athlete-care-go/internal/model"

	"gorm.io/gorm"
)

// AthleteRepository 接口定义了运动员档案的持久化操作。
type AthleteRepository interface {
	Create(athlete *model.Athlete) error
	FindByID(id, ownerID uint) (*model.Athlete, error)
	FindWithPagination(ownerID uint, offset, limit int) ([]model.Athlete, int64, error)
	Update(athlete *model.Athlete) error
	Delete(id, ownerID uint) error
}

type athleteRepository struct {
	db *gorm.DB
}

// NewAthleteRepository 创建一个新的 AthleteRepository 实例。
func NewAthleteRepository(db *gorm.DB) AthleteRepository {
	return &athleteRepository{db: db}
}

func (r *athleteRepository) Create(athlete *model.Athlete) error {
	return r.db.Create(athlete).Error
}

func (r *athleteRepository) FindByID(id, ownerID uint) (*model.Athlete, error) {
	var athlete model.Athlete
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&athlete).Error
	if err != nil {
		return nil, err
	}
	return &athlete, nil
}

// FindWithPagination 分页检索某临床医生名下的运动员档案。
func (r *athleteRepository) FindWithPagination(ownerID uint, offset, limit int) ([]model.Athlete, int64, error) {
	var athletes []model.Athlete
	var total int64

	db := r.db.Model(&model.Athlete{}).Where("owner_id = ?", ownerID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&athletes).Error
	if err != nil {
		return nil, 0, err
	}
	return athletes, total, nil
}

func (r *athleteRepository) Update(athlete *model.Athlete) error {
	return r.db.Save(athlete).Error
}

func (r *athleteRepository) Delete(id, ownerID uint) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Athlete{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

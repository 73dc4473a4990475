package repository

import (
	"athlete-care-go/internal/model"

	"gorm.io/gorm"
)

// TreatmentPlanRepository 接口定义了治疗方案的持久化操作。
type TreatmentPlanRepository interface {
	Create(plan *model.TreatmentPlan) error
	FindByID(id, ownerID uint) (*model.TreatmentPlan, error)
	FindByAthlete(athleteID, ownerID uint) ([]model.TreatmentPlan, error)
	Update(plan *model.TreatmentPlan) error
}

type treatmentPlanRepository struct {
	db *gorm.DB
}

// NewTreatmentPlanRepository 创建一个新的 TreatmentPlanRepository 实例。
func NewTreatmentPlanRepository(db *gorm.DB) TreatmentPlanRepository {
	return &treatmentPlanRepository{db: db}
}

func (r *treatmentPlanRepository) Create(plan *model.TreatmentPlan) error {
	return r.db.Create(plan).Error
}

func (r *treatmentPlanRepository) FindByID(id, ownerID uint) (*model.TreatmentPlan, error) {
	var plan model.TreatmentPlan
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindByAthlete 返回某运动员的全部治疗方案，最新创建的在前。
func (r *treatmentPlanRepository) FindByAthlete(athleteID, ownerID uint) ([]model.TreatmentPlan, error) {
	var plans []model.TreatmentPlan
	err := r.db.Where("athlete_id = ? AND owner_id = ?", athleteID, ownerID).
		Order("created_at DESC").Find(&plans).Error
	return plans, err
}

func (r *treatmentPlanRepository) Update(plan *model.TreatmentPlan) error {
	return r.db.Save(plan).Error
}

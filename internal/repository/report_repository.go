package repository

import (
	"athlete-care-go/internal/model"

	"gorm.io/gorm"
)

// ReportRepository 接口定义了报告文件元数据的持久化操作。
type ReportRepository interface {
	Create(report *model.Report) error
	FindByID(id, ownerID uint) (*model.Report, error)
	FindByAthlete(athleteID, ownerID uint) ([]model.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建一个新的 ReportRepository 实例。
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) FindByID(id, ownerID uint) (*model.Report, error) {
	var report model.Report
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// FindByAthlete 返回某运动员的全部报告元数据，最新上传的在前。
func (r *reportRepository) FindByAthlete(athleteID, ownerID uint) ([]model.Report, error) {
	var reports []model.Report
	err := r.db.Where("athlete_id = ? AND owner_id = ?", athleteID, ownerID).
		Order("created_at DESC").Find(&reports).Error
	return reports, err
}

package repository

import (
	"time"

	"athlete-care-go/internal/model"

	"gorm.io/gorm"
)

// AppointmentRepository 接口定义了预约的持久化操作。
type AppointmentRepository interface {
	Create(appointment *model.Appointment) error
	FindByID(id, ownerID uint) (*model.Appointment, error)
	FindByAthlete(athleteID, ownerID uint) ([]model.Appointment, error)
	FindByRange(ownerID uint, from, to time.Time) ([]model.Appointment, error)
	Update(appointment *model.Appointment) error
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository 创建一个新的 AppointmentRepository 实例。
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(appointment *model.Appointment) error {
	return r.db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(id, ownerID uint) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&appointment).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// FindByAthlete 返回某运动员的全部预约，按开始时间升序。
func (r *appointmentRepository) FindByAthlete(athleteID, ownerID uint) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.db.Where("athlete_id = ? AND owner_id = ?", athleteID, ownerID).
		Order("starts_at ASC").Find(&appointments).Error
	return appointments, err
}

// FindByRange 返回时间窗口内的预约，按开始时间升序。
func (r *appointmentRepository) FindByRange(ownerID uint, from, to time.Time) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.db.Where("owner_id = ? AND starts_at >= ? AND starts_at < ?", ownerID, from, to).
		Order("starts_at ASC").Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) Update(appointment *model.Appointment) error {
	return r.db.Save(appointment).Error
}

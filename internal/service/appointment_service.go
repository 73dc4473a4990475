package service

import (
	"errors"
	"time"

	"athlete-care-go/internal/model"
	"athlete-care-go/internal/repository"
)

// AppointmentService 定义了预约的业务操作。
type AppointmentService interface {
	Create(ownerID uint, appointment *model.Appointment) error
	ListByAthlete(athleteID, ownerID uint) ([]model.Appointment, error)
	ListByRange(ownerID uint, from, to time.Time) ([]model.Appointment, error)
	UpdateStatus(id, ownerID uint, status string) (*model.Appointment, error)
}

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	athleteRepo     repository.AthleteRepository
}

// NewAppointmentService 创建一个新的 AppointmentService 实例。
func NewAppointmentService(appointmentRepo repository.AppointmentRepository, athleteRepo repository.AthleteRepository) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		athleteRepo:     athleteRepo,
	}
}

// Create 为某运动员创建预约，运动员必须存在且归属当前用户。
func (s *appointmentService) Create(ownerID uint, appointment *model.Appointment) error {
	if _, err := s.athleteRepo.FindByID(appointment.AthleteID, ownerID); err != nil {
		return err
	}
	appointment.OwnerID = ownerID
	if appointment.DurationMinutes <= 0 {
		appointment.DurationMinutes = 30
	}
	appointment.Status = model.AppointmentStatusScheduled
	return s.appointmentRepo.Create(appointment)
}

func (s *appointmentService) ListByAthlete(athleteID, ownerID uint) ([]model.Appointment, error) {
	if _, err := s.athleteRepo.FindByID(athleteID, ownerID); err != nil {
		return nil, err
	}
	return s.appointmentRepo.FindByAthlete(athleteID, ownerID)
}

func (s *appointmentService) ListByRange(ownerID uint, from, to time.Time) ([]model.Appointment, error) {
	return s.appointmentRepo.FindByRange(ownerID, from, to)
}

// UpdateStatus 修改预约状态，只接受预定义的状态值。
func (s *appointmentService) UpdateStatus(id, ownerID uint, status string) (*model.Appointment, error) {
	switch status {
	case model.AppointmentStatusScheduled, model.AppointmentStatusCompleted, model.AppointmentStatusCancelled:
	default:
		return nil, errors.New("无效的预约状态")
	}

	appointment, err := s.appointmentRepo.FindByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	appointment.Status = status
	if err := s.appointmentRepo.Update(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

package service

import (
	"athlete-care-go/internal/model"
	"athlete-care-go/internal/repository"
)

// AthleteService 定义了运动员档案的业务操作。
type AthleteService interface {
	Create(ownerID uint, athlete *model.Athlete) error
	Get(id, ownerID uint) (*model.Athlete, error)
	List(ownerID uint, offset, limit int) ([]model.Athlete, int64, error)
	Update(ownerID uint, athlete *model.Athlete) error
	Delete(id, ownerID uint) error
}

type athleteService struct {
	athleteRepo repository.AthleteRepository
}

// NewAthleteService 创建一个新的 AthleteService 实例。
func NewAthleteService(athleteRepo repository.AthleteRepository) AthleteService {
	return &athleteService{athleteRepo: athleteRepo}
}

func (s *athleteService) Create(ownerID uint, athlete *model.Athlete) error {
	athlete.OwnerID = ownerID
	return s.athleteRepo.Create(athlete)
}

func (s *athleteService) Get(id, ownerID uint) (*model.Athlete, error) {
	return s.athleteRepo.FindByID(id, ownerID)
}

func (s *athleteService) List(ownerID uint, offset, limit int) ([]model.Athlete, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.athleteRepo.FindWithPagination(ownerID, offset, limit)
}

// Update 只允许所有者修改档案字段，先取回现有记录以保留归属。
func (s *athleteService) Update(ownerID uint, athlete *model.Athlete) error {
	existing, err := s.athleteRepo.FindByID(athlete.ID, ownerID)
	if err != nil {
		return err
	}
	existing.Name = athlete.Name
	existing.Sport = athlete.Sport
	existing.BirthDate = athlete.BirthDate
	existing.Notes = athlete.Notes
	return s.athleteRepo.Update(existing)
}

func (s *athleteService) Delete(id, ownerID uint) error {
	return s.athleteRepo.Delete(id, ownerID)
}

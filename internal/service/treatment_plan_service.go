package service

import (
	"errors"

	"athlete-care-go/internal/model"
	"athlete-care-go/internal/repository"
)

// TreatmentPlanService 定义了治疗方案的业务操作。
type TreatmentPlanService interface {
	Create(ownerID uint, plan *model.TreatmentPlan) error
	Get(id, ownerID uint) (*model.TreatmentPlan, error)
	ListByAthlete(athleteID, ownerID uint) ([]model.TreatmentPlan, error)
	Update(ownerID uint, plan *model.TreatmentPlan) error
}

type treatmentPlanService struct {
	planRepo    repository.TreatmentPlanRepository
	athleteRepo repository.AthleteRepository
}

// NewTreatmentPlanService 创建一个新的 TreatmentPlanService 实例。
func NewTreatmentPlanService(planRepo repository.TreatmentPlanRepository, athleteRepo repository.AthleteRepository) TreatmentPlanService {
	return &treatmentPlanService{
		planRepo:    planRepo,
		athleteRepo: athleteRepo,
	}
}

// Create 为某运动员创建治疗方案，运动员必须存在且归属当前用户。
func (s *treatmentPlanService) Create(ownerID uint, plan *model.TreatmentPlan) error {
	if _, err := s.athleteRepo.FindByID(plan.AthleteID, ownerID); err != nil {
		return err
	}
	plan.OwnerID = ownerID
	plan.Status = model.TreatmentPlanStatusActive
	return s.planRepo.Create(plan)
}

func (s *treatmentPlanService) Get(id, ownerID uint) (*model.TreatmentPlan, error) {
	return s.planRepo.FindByID(id, ownerID)
}

func (s *treatmentPlanService) ListByAthlete(athleteID, ownerID uint) ([]model.TreatmentPlan, error) {
	if _, err := s.athleteRepo.FindByID(athleteID, ownerID); err != nil {
		return nil, err
	}
	return s.planRepo.FindByAthlete(athleteID, ownerID)
}

// Update 修改方案内容与状态。
func (s *treatmentPlanService) Update(ownerID uint, plan *model.TreatmentPlan) error {
	existing, err := s.planRepo.FindByID(plan.ID, ownerID)
	if err != nil {
		return err
	}

	if plan.Status != "" {
		switch plan.Status {
		case model.TreatmentPlanStatusActive, model.TreatmentPlanStatusCompleted, model.TreatmentPlanStatusArchived:
		default:
			return errors.New("无效的方案状态")
		}
		existing.Status = plan.Status
	}
	existing.Title = plan.Title
	existing.Description = plan.Description
	existing.StartDate = plan.StartDate
	existing.EndDate = plan.EndDate
	return s.planRepo.Update(existing)
}

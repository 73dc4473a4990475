package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"athlete-care-go/internal/config"
	"athlete-care-go/internal/model"
	"athlete-care-go/internal/repository"
	"athlete-care-go/pkg/storage"

	"github.com/google/uuid"
)

// ReportService 定义了运动员报告文件的业务操作。
// 文件本体存放在 MinIO，数据库只保留元数据。
type ReportService interface {
	Upload(ctx context.Context, ownerID, athleteID uint, fileName, contentType string, size int64, reader io.Reader) (*model.Report, error)
	ListByAthlete(athleteID, ownerID uint) ([]model.Report, error)
	DownloadURL(id, ownerID uint) (string, error)
}

type reportService struct {
	reportRepo  repository.ReportRepository
	athleteRepo repository.AthleteRepository
	minioCfg    config.MinIOConfig
}

// NewReportService 创建一个新的 ReportService 实例。
func NewReportService(reportRepo repository.ReportRepository, athleteRepo repository.AthleteRepository, minioCfg config.MinIOConfig) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		athleteRepo: athleteRepo,
		minioCfg:    minioCfg,
	}
}

// Upload 上传一份报告文件并登记元数据，运动员必须归属当前用户。
func (s *reportService) Upload(ctx context.Context, ownerID, athleteID uint, fileName, contentType string, size int64, reader io.Reader) (*model.Report, error) {
	if _, err := s.athleteRepo.FindByID(athleteID, ownerID); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("athlete-%d/%s%s", athleteID, uuid.NewString(), filepath.Ext(fileName))
	if err := storage.UploadObject(ctx, s.minioCfg.BucketName, objectName, reader, size, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload report object: %w", err)
	}

	report := &model.Report{
		OwnerID:     ownerID,
		AthleteID:   athleteID,
		FileName:    fileName,
		ObjectName:  objectName,
		ContentType: contentType,
		SizeBytes:   size,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report record: %w", err)
	}
	return report, nil
}

func (s *reportService) ListByAthlete(athleteID, ownerID uint) ([]model.Report, error) {
	if _, err := s.athleteRepo.FindByID(athleteID, ownerID); err != nil {
		return nil, err
	}
	return s.reportRepo.FindByAthlete(athleteID, ownerID)
}

// DownloadURL 为报告生成 15 分钟有效的预签名下载链接。
func (s *reportService) DownloadURL(id, ownerID uint) (string, error) {
	report, err := s.reportRepo.FindByID(id, ownerID)
	if err != nil {
		return "", err
	}
	return storage.GetPresignedURL(s.minioCfg.BucketName, report.ObjectName, 15*time.Minute)
}

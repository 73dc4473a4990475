// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"fmt"
	"time"

	"athlete-care-go/internal/model"
	"athlete-care-go/internal/repository"
	"athlete-care-go/pkg/inference"
	"athlete-care-go/pkg/kafka"
	"athlete-care-go/pkg/log"

	"github.com/google/uuid"
)

// QueryService 定义了问答提交的接口。
type QueryService interface {
	// Submit 提交一条自由文本问题并同步等待终态。
	// 调用失败时返回的 record 为已持久化的 FAILED 记录，error 描述失败原因：
	// 失败既落入对话历史，也上抛给调用方，二者始终一致。
	Submit(ctx context.Context, ownerID uint, input SubmitInput) (*model.QueryRecord, error)
}

// SubmitInput 是一次问答提交的入参。ConversationID 为空时生成新对话。
type SubmitInput struct {
	Query          string
	ConversationID string
	Context        string
	Metadata       model.JSONMap
}

// HistoryIndexer 在记录到达 COMPLETED 后将其写入搜索索引，尽力而为。
type HistoryIndexer interface {
	IndexCompleted(ctx context.Context, record *model.QueryRecord) error
}

type queryService struct {
	recordRepo      repository.QueryRecordRepository
	inferenceClient inference.Client
	indexer         HistoryIndexer
}

// NewQueryService 创建一个新的 QueryService 实例。indexer 可以为 nil。
func NewQueryService(recordRepo repository.QueryRecordRepository, inferenceClient inference.Client, indexer HistoryIndexer) QueryService {
	return &queryService{
		recordRepo:      recordRepo,
		inferenceClient: inferenceClient,
		indexer:         indexer,
	}
}

// Submit 驱动一条记录走完 PENDING → PROCESSING → COMPLETED|FAILED 的完整生命周期，
// 每次状态迁移都单独持久化。终态持久化的内容始终与推理调用的实际结果一致。
func (s *queryService) Submit(ctx context.Context, ownerID uint, input SubmitInput) (*model.QueryRecord, error) {
	conversationID := input.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	record := &model.QueryRecord{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		ConversationID: conversationID,
		Query:          input.Query,
		Status:         model.QueryStatusPending,
		Metadata:       input.Metadata,
	}

	startedAt := time.Now()
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create query record: %w", err)
	}
	s.publishEvent(record)

	record.Status = model.QueryStatusProcessing
	if err := s.recordRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to mark query record processing: %w", err)
	}

	answer, err := s.inferenceClient.Ask(ctx, inference.AskRequest{
		Query:          input.Query,
		Context:        input.Context,
		ConversationID: conversationID,
		Metadata:       record.Metadata,
	})

	elapsed := time.Since(startedAt).Milliseconds()
	record.ProcessingDurationMs = &elapsed

	if err != nil {
		failure := err.Error()
		record.Status = model.QueryStatusFailed
		record.Response = &failure
		// 使用后台上下文持久化终态：即使原始请求上下文已被取消，
		// 失败记录也要进入对话历史。
		if persistErr := s.recordRepo.Update(context.Background(), record); persistErr != nil {
			log.Errorf("[QueryService] 持久化 FAILED 记录失败, record: %s, error: %v", record.ID, persistErr)
		}
		s.publishEvent(record)
		return record, err
	}

	record.Status = model.QueryStatusCompleted
	record.Response = &answer
	if err := s.recordRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist completed query record: %w", err)
	}
	s.publishEvent(record)

	if s.indexer != nil {
		if err := s.indexer.IndexCompleted(ctx, record); err != nil {
			// 索引失败只记录日志，不影响已完成的问答
			log.Warnf("[QueryService] 索引问答记录失败, record: %s, error: %v", record.ID, err)
		}
	}

	return record, nil
}

// publishEvent 发布生命周期事件，失败只记录日志。
func (s *queryService) publishEvent(record *model.QueryRecord) {
	err := kafka.PublishQueryEvent(context.Background(), kafka.QueryLifecycleEvent{
		RecordID:       record.ID,
		OwnerID:        record.OwnerID,
		ConversationID: record.ConversationID,
		Status:         string(record.Status),
		OccurredAt:     time.Now(),
	})
	if err != nil {
		log.Warnf("[QueryService] 发布生命周期事件失败, record: %s, error: %v", record.ID, err)
	}
}

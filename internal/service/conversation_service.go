package service

import (
	"context"

	"athlete-care-go/internal/model"
	"athlete-care-go/internal/repository"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

// ConversationService 定义了对话历史的只读接口。它从不写入任何记录。
type ConversationService interface {
	// History 返回某用户按 created_at 倒序的一页问答记录及匹配总数。
	// conversationID 为空时跨全部对话；limit 非法时取默认值并强制不超过上限。
	History(ctx context.Context, ownerID uint, conversationID string, limit, offset int) ([]model.QueryRecord, int64, error)
	// ListConversations 返回该用户所有对话的概览，按最近消息时间倒序，
	// 每次调用重新计算。
	ListConversations(ctx context.Context, ownerID uint) ([]model.ConversationSummary, error)
}

type conversationService struct {
	recordRepo repository.QueryRecordRepository
}

// NewConversationService 创建一个新的 ConversationService。
func NewConversationService(recordRepo repository.QueryRecordRepository) ConversationService {
	return &conversationService{recordRepo: recordRepo}
}

// History 分页获取问答历史。
func (s *conversationService) History(ctx context.Context, ownerID uint, conversationID string, limit, offset int) ([]model.QueryRecord, int64, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.recordRepo.FindWithPagination(ctx, ownerID, conversationID, limit, offset)
}

// ListConversations 获取对话概览投影。
func (s *conversationService) ListConversations(ctx context.Context, ownerID uint) ([]model.ConversationSummary, error) {
	return s.recordRepo.SummarizeConversations(ctx, ownerID)
}

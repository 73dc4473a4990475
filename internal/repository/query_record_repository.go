package repository

import (
	"context"

	"athlete-care-go/internal/model"

	"gorm.io/gorm"
)

// QueryRecordRepository 定义了问答记录的持久化操作。
// 所有读取都以 owner_id 为范围，任何记录对非所有者不可见。
type QueryRecordRepository interface {
	Create(ctx context.Context, record *model.QueryRecord) error
	Update(ctx context.Context, record *model.QueryRecord) error
	FindByID(ctx context.Context, id string, ownerID uint) (*model.QueryRecord, error)
	// FindWithPagination 按 created_at 倒序返回一页记录及匹配总数；
	// conversationID 为空时返回该用户的全部记录。
	FindWithPagination(ctx context.Context, ownerID uint, conversationID string, limit, offset int) ([]model.QueryRecord, int64, error)
	// SummarizeConversations 以单条聚合查询计算每个对话的消息数与最近一条消息，
	// 按最近消息时间倒序返回。
	SummarizeConversations(ctx context.Context, ownerID uint) ([]model.ConversationSummary, error)
}

// queryRecordRepository 是 QueryRecordRepository 接口的 GORM 实现。
type queryRecordRepository struct {
	db *gorm.DB
}

// NewQueryRecordRepository 创建一个新的 QueryRecordRepository 实例。
func NewQueryRecordRepository(db *gorm.DB) QueryRecordRepository {
	return &queryRecordRepository{db: db}
}

// Create 在数据库中创建一条新的问答记录。
func (r *queryRecordRepository) Create(ctx context.Context, record *model.QueryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update 保存记录的当前字段，用于持久化每一次状态迁移。
func (r *queryRecordRepository) Update(ctx context.Context, record *model.QueryRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// FindByID 在所有者范围内根据 ID 查找一条记录。
func (r *queryRecordRepository) FindByID(ctx context.Context, id string, ownerID uint) (*model.QueryRecord, error) {
	var record model.QueryRecord
	err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindWithPagination 分页检索问答记录。
func (r *queryRecordRepository) FindWithPagination(ctx context.Context, ownerID uint, conversationID string, limit, offset int) ([]model.QueryRecord, int64, error) {
	var records []model.QueryRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&model.QueryRecord{}).Where("owner_id = ?", ownerID)
	if conversationID != "" {
		db = db.Where("conversation_id = ?", conversationID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// SummarizeConversations 用一条聚合 SQL 构建对话概览，避免逐对话回查。
func (r *queryRecordRepository) SummarizeConversations(ctx context.Context, ownerID uint) ([]model.ConversationSummary, error) {
	var summaries []model.ConversationSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT g.conversation_id AS conversation_id,
		       g.message_count   AS message_count,
		       g.last_message_at AS last_message_at,
		       q.query           AS last_message
		FROM (
			SELECT conversation_id,
			       COUNT(*)       AS message_count,
			       MAX(created_at) AS last_message_at
			FROM query_records
			WHERE owner_id = ?
			GROUP BY conversation_id
		) g
		JOIN query_records q
		  ON q.owner_id = ?
		 AND q.conversation_id = g.conversation_id
		 AND q.created_at = g.last_message_at
		ORDER BY g.last_message_at DESC`, ownerID, ownerID).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

package model

import "time"

// QueryStatus 表示一条问答记录的生命周期状态。
type QueryStatus string

const (
	QueryStatusPending    QueryStatus = "PENDING"
	QueryStatusProcessing QueryStatus = "PROCESSING"
	QueryStatusCompleted  QueryStatus = "COMPLETED"
	QueryStatusFailed     QueryStatus = "FAILED"
)

// Terminal 报告该状态是否为终态。到达终态后不再发生任何状态迁移。
func (s QueryStatus) Terminal() bool {
	return s == QueryStatusCompleted || s == QueryStatusFailed
}

// QueryRecord 对应于数据库中的 'query_records' 表。
// 每条记录是一次已提交问答的工作单元，同时也是对话历史的持久化单元。
// 状态只沿 PENDING → PROCESSING → COMPLETED|FAILED 单向推进，记录不会被重新处理。
type QueryRecord struct {
	ID             string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID        uint        `gorm:"index;not null" json:"ownerId"`
	ConversationID string      `gorm:"type:varchar(36);index;not null" json:"conversationId"`
	Query          string      `gorm:"type:text;not null" json:"query"`
	// Response 在终态之前为 NULL；COMPLETED 时为答案文本，FAILED 时为失败描述。
	Response             *string     `gorm:"type:text" json:"response"`
	Status               QueryStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	Metadata             JSONMap     `gorm:"type:json" json:"metadata"`
	ProcessingDurationMs *int64      `json:"processingDurationMs"`
	CreatedAt            time.Time   `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt            time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (QueryRecord) TableName() string {
	return "query_records"
}

// ConversationSummary 是按 conversation_id 分组得到的只读投影，
// 每次查询时重新计算，不做缓存。
type ConversationSummary struct {
	ConversationID string    `json:"conversationId"`
	MessageCount   int64     `json:"messageCount"`
	LastMessage    string    `json:"lastMessage"`
	LastMessageAt  time.Time `json:"lastMessageAt"`
}

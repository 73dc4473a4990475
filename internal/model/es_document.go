package model

import "time"

// EsQueryDocument 是索引到 Elasticsearch 中的问答文档结构，
// 仅对已完成（COMPLETED）的问答记录建立索引。
type EsQueryDocument struct {
	RecordID       string    `json:"record_id"`
	OwnerID        uint      `json:"owner_id"`
	ConversationID string    `json:"conversation_id"`
	Query          string    `json:"query"`
	Answer         string    `json:"answer"`
	CreatedAt      time.Time `json:"created_at"`
}

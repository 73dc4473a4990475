// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"athlete-care-go/internal/config"
	"athlete-care-go/pkg/log"

	"github.com/segmentio/kafka-go"
)

// QueryLifecycleEvent 是问答记录状态迁移时发布的领域事件，
// 供下游系统（审计、统计）消费，发布失败不影响主流程。
type QueryLifecycleEvent struct {
	RecordID       string    `json:"record_id"`
	OwnerID        uint      `json:"owner_id"`
	ConversationID string    `json:"conversation_id"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者。
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka 生产者初始化成功")
}

// PublishQueryEvent 发布一条问答生命周期事件。
// 生产者未初始化时（例如单元测试）静默跳过。
func PublishQueryEvent(ctx context.Context, event QueryLifecycleEvent) error {
	if producer == nil {
		return nil
	}
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ConversationID),
		Value: eventBytes,
	})
}

// Close 关闭生产者连接。
func Close() {
	if producer != nil {
		_ = producer.Close()
	}
}

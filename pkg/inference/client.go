// Package inference 提供了调用外部推理服务的客户端。
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"athlete-care-go/internal/config"
	"athlete-care-go/pkg/log"
)

// Client defines the interface for an inference client.
type Client interface {
	// Ask 向推理服务发起一次问答调用，返回规范化后的答案文本。
	// 每次调用恰好发起一次外部请求，不做重试与缓存。
	Ask(ctx context.Context, req AskRequest) (string, error)
}

// AskRequest 是一次推理调用的入参。
type AskRequest struct {
	Query          string
	Context        string
	ConversationID string
	Metadata       map[string]interface{}
}

type httpClient struct {
	cfg     config.InferenceConfig
	timeout time.Duration
	client  *http.Client
}

// NewClient 根据显式传入的配置创建一个推理客户端。
// 超时策略由本客户端持有，调用方不需要关心取消细节。
func NewClient(cfg config.InferenceConfig) Client {
	timeoutMs := cfg.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = config.DefaultInferenceTimeoutMs
	}
	return &httpClient{
		cfg:     cfg,
		timeout: time.Duration(timeoutMs) * time.Millisecond,
		client:  &http.Client{},
	}
}

type askBody struct {
	Query          string                 `json:"query"`
	Context        string                 `json:"context,omitempty"`
	ConversationID string                 `json:"conversation_id"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// answerFields 是答案提取的有序规则链：依次尝试各字段，新增字段时只需扩展此表。
var answerFields = []string{"answer", "response", "message"}

// Ask calls the inference service for an answer and normalizes the response.
func (c *httpClient) Ask(ctx context.Context, req AskRequest) (string, error) {
	reqBytes, err := json.Marshal(askBody{
		Query:          req.Query,
		Context:        req.Context,
		ConversationID: req.ConversationID,
		Metadata:       req.Metadata,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal inference request: %w", err)
	}

	// 超时到期后取消在途请求，调用方最多阻塞 timeout 加少量本地开销。
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create inference request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warnf("[InferenceClient] 调用超时, timeout: %v", c.timeout)
			return "", &TimeoutError{Timeout: c.timeout}
		}
		log.Errorf("[InferenceClient] 调用推理服务失败, error: %v", err)
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &TimeoutError{Timeout: c.timeout}
		}
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Errorf("[InferenceClient] 推理服务返回非成功状态码: %d", resp.StatusCode)
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		return "", &TransportError{Err: fmt.Errorf("failed to decode inference response: %w", err)}
	}

	return extractAnswer(payload), nil
}

// extractAnswer 按 answerFields 的顺序提取答案字段；
// 全部缺失时回退为整个载荷的 JSON 序列化，保证成功调用永远不会返回空答案。
func extractAnswer(payload map[string]interface{}) string {
	for _, field := range answerFields {
		if v, ok := payload[field]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	dump, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(dump)
}

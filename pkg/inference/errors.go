package inference

import (
	"fmt"
	"time"
)

// TimeoutError 表示外部推理调用在配置的超时窗口内没有完成。
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("inference call timed out after %dms", e.Timeout.Milliseconds())
}

// UpstreamError 表示外部推理服务返回了非成功的 HTTP 响应。
// Body 为尽力读取到的响应体文本。
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("inference service returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError 表示对外部推理服务的调用根本无法完成（例如连接层失败）。
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("inference call failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

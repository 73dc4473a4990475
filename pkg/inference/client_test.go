package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"athlete-care-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, timeoutMs int) Client {
	return NewClient(config.InferenceConfig{BaseURL: baseURL, TimeoutMs: timeoutMs})
}

func TestAskSendsRequestBody(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "ok"})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 1000)
	answer, err := client.Ask(context.Background(), AskRequest{
		Query:          "What is VO2max?",
		Context:        "aerobic testing",
		ConversationID: "c1",
		Metadata:       map[string]interface{}{"source": "mobile"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", answer)

	assert.Equal(t, "What is VO2max?", got["query"])
	assert.Equal(t, "aerobic testing", got["context"])
	assert.Equal(t, "c1", got["conversation_id"])
	meta, ok := got["metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "mobile", meta["source"])
}

func TestAskAnswerExtraction(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
		want    string
	}{
		{"answer field", map[string]interface{}{"answer": "A measure of..."}, "A measure of..."},
		{"response field", map[string]interface{}{"response": "from response"}, "from response"},
		{"message field", map[string]interface{}{"message": "from message"}, "from message"},
		{"answer wins over response", map[string]interface{}{"answer": "first", "response": "second"}, "first"},
		{"empty answer falls through", map[string]interface{}{"answer": "", "message": "fallback"}, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(tt.payload)
			}))
			defer srv.Close()

			answer, err := newTestClient(srv.URL, 1000).Ask(context.Background(), AskRequest{Query: "q", ConversationID: "c"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, answer)
		})
	}
}

func TestAskFallsBackToPayloadDump(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"result": "something else", "score": 0.9})
	}))
	defer srv.Close()

	answer, err := newTestClient(srv.URL, 1000).Ask(context.Background(), AskRequest{Query: "q", ConversationID: "c"})
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.Contains(t, answer, "something else")
}

func TestAskUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("server error"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 1000).Ask(context.Background(), AskRequest{Query: "q", ConversationID: "c"})
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "server error")
}

func TestAskTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	start := time.Now()
	_, err := newTestClient(srv.URL, 100).Ask(context.Background(), AskRequest{Query: "q", ConversationID: "c"})
	elapsed := time.Since(start)

	require.Error(t, err)
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Contains(t, err.Error(), "100ms")

	// 超时后立即返回，不会等到远端响应
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Less(t, elapsed, 1*time.Second)
}

func TestAskTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 立即关闭，连接必然失败

	_, err := newTestClient(srv.URL, 1000).Ask(context.Background(), AskRequest{Query: "q", ConversationID: "c"})
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestExtractAnswerOrder(t *testing.T) {
	assert.Equal(t, []string{"answer", "response", "message"}, answerFields)
}

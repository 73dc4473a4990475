package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"athlete-care-go/internal/model"
	"athlete-care-go/internal/service"
	"athlete-care-go/pkg/inference"
	"athlete-care-go/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQueryService struct {
	record *model.QueryRecord
	err    error
}

func (s *stubQueryService) Submit(_ context.Context, _ uint, _ service.SubmitInput) (*model.QueryRecord, error) {
	return s.record, s.err
}

type stubConversationService struct {
	records   []model.QueryRecord
	total     int64
	summaries []model.ConversationSummary
	gotLimit  int
	gotOffset int
}

func (s *stubConversationService) History(_ context.Context, _ uint, _ string, limit, offset int) ([]model.QueryRecord, int64, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	return s.records, s.total, nil
}

func (s *stubConversationService) ListConversations(_ context.Context, _ uint) ([]model.ConversationSummary, error) {
	return s.summaries, nil
}

func newQueryRouter(qs service.QueryService, cs service.ConversationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("claims", &token.CustomClaims{UserID: 1, Username: "coach"})
	})
	h := NewQueryHandler(qs, cs)
	router.POST("/queries", h.Submit)
	router.GET("/queries/history", h.History)
	router.GET("/queries/conversations", h.ListConversations)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSubmitReturnsCompletedRecord(t *testing.T) {
	answer := "使用 RICE 原则处理急性扭伤。"
	qs := &stubQueryService{record: &model.QueryRecord{
		ID:             "r1",
		ConversationID: "c1",
		Status:         model.QueryStatusCompleted,
		Response:       &answer,
	}}
	router := newQueryRouter(qs, &stubConversationService{})

	w, resp := doJSON(t, router, http.MethodPost, "/queries", `{"query":"脚踝扭伤怎么处理？"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "COMPLETED", data["status"])
	assert.Equal(t, answer, data["response"])
}

func TestSubmitRejectsEmptyQuery(t *testing.T) {
	router := newQueryRouter(&stubQueryService{}, &stubConversationService{})

	w, resp := doJSON(t, router, http.MethodPost, "/queries", `{"query":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, float64(http.StatusBadRequest), resp["code"])
}

func TestSubmitRejectsOverlongQuery(t *testing.T) {
	router := newQueryRouter(&stubQueryService{}, &stubConversationService{})

	long := strings.Repeat("長", 4001)
	w, _ := doJSON(t, router, http.MethodPost, "/queries", `{"query":"`+long+`"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitRejectsMalformedConversationID(t *testing.T) {
	router := newQueryRouter(&stubQueryService{}, &stubConversationService{})

	w, _ := doJSON(t, router, http.MethodPost, "/queries", `{"query":"q","conversationId":"not-a-uuid"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitErrorStatusMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "超时映射 504", err: &inference.TimeoutError{}, wantStatus: http.StatusGatewayTimeout},
		{name: "上游错误映射 502", err: &inference.UpstreamError{StatusCode: 500, Body: "boom"}, wantStatus: http.StatusBadGateway},
		{name: "传输错误映射 502", err: &inference.TransportError{Err: assert.AnError}, wantStatus: http.StatusBadGateway},
		{name: "其他错误映射 500", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			failure := tc.err.Error()
			qs := &stubQueryService{
				record: &model.QueryRecord{ID: "r1", Status: model.QueryStatusFailed, Response: &failure},
				err:    tc.err,
			}
			router := newQueryRouter(qs, &stubConversationService{})

			w, resp := doJSON(t, router, http.MethodPost, "/queries", `{"query":"q"}`)

			assert.Equal(t, tc.wantStatus, w.Code)
			// 失败响应同样携带已持久化的 FAILED 记录
			data := resp["data"].(map[string]interface{})
			assert.Equal(t, "FAILED", data["status"])
		})
	}
}

func TestHistoryClampsLimit(t *testing.T) {
	cs := &stubConversationService{records: []model.QueryRecord{}, total: 0}
	router := newQueryRouter(&stubQueryService{}, cs)

	w, _ := doJSON(t, router, http.MethodGet, "/queries/history?limit=500&offset=-3", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, cs.gotLimit)
	assert.Equal(t, 0, cs.gotOffset)
}

func TestHistoryHasMore(t *testing.T) {
	testCases := []struct {
		name        string
		total       int64
		query       string
		wantHasMore bool
	}{
		{name: "还有下一页", total: 120, query: "?limit=50&offset=0", wantHasMore: true},
		{name: "正好取完", total: 100, query: "?limit=50&offset=50", wantHasMore: false},
		{name: "空结果", total: 0, query: "", wantHasMore: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cs := &stubConversationService{records: []model.QueryRecord{}, total: tc.total}
			router := newQueryRouter(&stubQueryService{}, cs)

			w, resp := doJSON(t, router, http.MethodGet, "/queries/history"+tc.query, "")

			require.Equal(t, http.StatusOK, w.Code)
			data := resp["data"].(map[string]interface{})
			assert.Equal(t, tc.wantHasMore, data["hasMore"])
			assert.Equal(t, float64(tc.total), data["total"])
		})
	}
}

func TestListConversations(t *testing.T) {
	cs := &stubConversationService{summaries: []model.ConversationSummary{
		{ConversationID: "c1", MessageCount: 3, LastMessage: "赛前饮食建议"},
	}}
	router := newQueryRouter(&stubQueryService{}, cs)

	w, resp := doJSON(t, router, http.MethodGet, "/queries/conversations", "")

	assert.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "c1", first["conversationId"])
	assert.Equal(t, float64(3), first["messageCount"])
}

package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"athlete-care-go/internal/model"
	"athlete-care-go/pkg/inference"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statusSnapshot 记录每次持久化调用时记录的状态与响应是否已填充。
type statusSnapshot struct {
	status      model.QueryStatus
	hasResponse bool
}

// fakeQueryRecordRepo 是 QueryRecordRepository 的内存实现，
// 按持久化顺序记录状态快照以便断言生命周期。
type fakeQueryRecordRepo struct {
	records   map[string]model.QueryRecord
	snapshots []statusSnapshot
	createErr error
	updateErr error
}

func newFakeQueryRecordRepo() *fakeQueryRecordRepo {
	return &fakeQueryRecordRepo{records: make(map[string]model.QueryRecord)}
}

func (f *fakeQueryRecordRepo) snapshot(record *model.QueryRecord) {
	f.snapshots = append(f.snapshots, statusSnapshot{
		status:      record.Status,
		hasResponse: record.Response != nil,
	})
}

func (f *fakeQueryRecordRepo) Create(_ context.Context, record *model.QueryRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records[record.ID] = *record
	f.snapshot(record)
	return nil
}

func (f *fakeQueryRecordRepo) Update(_ context.Context, record *model.QueryRecord) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.records[record.ID] = *record
	f.snapshot(record)
	return nil
}

func (f *fakeQueryRecordRepo) FindByID(_ context.Context, id string, ownerID uint) (*model.QueryRecord, error) {
	record, ok := f.records[id]
	if !ok || record.OwnerID != ownerID {
		return nil, errors.New("record not found")
	}
	return &record, nil
}

func (f *fakeQueryRecordRepo) FindWithPagination(_ context.Context, ownerID uint, conversationID string, limit, offset int) ([]model.QueryRecord, int64, error) {
	return nil, 0, nil
}

func (f *fakeQueryRecordRepo) SummarizeConversations(_ context.Context, ownerID uint) ([]model.ConversationSummary, error) {
	return nil, nil
}

// fakeInferenceClient 用可配置的函数模拟推理调用。
type fakeInferenceClient struct {
	fn func(ctx context.Context, req inference.AskRequest) (string, error)
}

func (f *fakeInferenceClient) Ask(ctx context.Context, req inference.AskRequest) (string, error) {
	return f.fn(ctx, req)
}

func TestSubmitCompletesWithGeneratedConversation(t *testing.T) {
	repo := newFakeQueryRecordRepo()
	client := &fakeInferenceClient{fn: func(_ context.Context, req inference.AskRequest) (string, error) {
		return "A measure of maximal oxygen uptake.", nil
	}}
	svc := NewQueryService(repo, client, nil)

	record, err := svc.Submit(context.Background(), 7, SubmitInput{Query: "What is VO2max?"})
	require.NoError(t, err)

	assert.Equal(t, model.QueryStatusCompleted, record.Status)
	require.NotNil(t, record.Response)
	assert.Equal(t, "A measure of maximal oxygen uptake.", *record.Response)
	assert.Equal(t, uint(7), record.OwnerID)
	require.NotNil(t, record.ProcessingDurationMs)
	assert.GreaterOrEqual(t, *record.ProcessingDurationMs, int64(0))

	// conversationId 缺省时生成新的 UUID
	_, parseErr := uuid.Parse(record.ConversationID)
	assert.NoError(t, parseErr)

	// 生命周期：PENDING → PROCESSING → COMPLETED，响应只在终态出现
	require.Len(t, repo.snapshots, 3)
	assert.Equal(t, model.QueryStatusPending, repo.snapshots[0].status)
	assert.False(t, repo.snapshots[0].hasResponse)
	assert.Equal(t, model.QueryStatusProcessing, repo.snapshots[1].status)
	assert.False(t, repo.snapshots[1].hasResponse)
	assert.Equal(t, model.QueryStatusCompleted, repo.snapshots[2].status)
	assert.True(t, repo.snapshots[2].hasResponse)
}

func TestSubmitKeepsSuppliedConversationID(t *testing.T) {
	repo := newFakeQueryRecordRepo()
	client := &fakeInferenceClient{fn: func(_ context.Context, req inference.AskRequest) (string, error) {
		assert.Equal(t, "c1", req.ConversationID)
		return "ok", nil
	}}
	svc := NewQueryService(repo, client, nil)

	record, err := svc.Submit(context.Background(), 1, SubmitInput{Query: "q", ConversationID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "c1", record.ConversationID)
}

func TestSubmitPersistsFailureAndReRaises(t *testing.T) {
	repo := newFakeQueryRecordRepo()
	upstream := &inference.UpstreamError{StatusCode: http.StatusInternalServerError, Body: "server error"}
	client := &fakeInferenceClient{fn: func(_ context.Context, _ inference.AskRequest) (string, error) {
		return "", upstream
	}}
	svc := NewQueryService(repo, client, nil)

	record, err := svc.Submit(context.Background(), 3, SubmitInput{Query: "q"})

	// 失败同时落库并上抛
	require.Error(t, err)
	var upstreamErr *inference.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)

	require.NotNil(t, record)
	assert.Equal(t, model.QueryStatusFailed, record.Status)
	require.NotNil(t, record.Response)
	assert.Contains(t, *record.Response, "500")
	assert.Contains(t, *record.Response, "server error")
	require.NotNil(t, record.ProcessingDurationMs)

	// 持久化的终态与实际观察到的结果一致
	persisted := repo.records[record.ID]
	assert.Equal(t, model.QueryStatusFailed, persisted.Status)
	require.NotNil(t, persisted.Response)
	assert.Equal(t, *record.Response, *persisted.Response)
}

func TestSubmitTimeoutFailure(t *testing.T) {
	repo := newFakeQueryRecordRepo()
	timeout := &inference.TimeoutError{Timeout: 100 * time.Millisecond}
	client := &fakeInferenceClient{fn: func(_ context.Context, _ inference.AskRequest) (string, error) {
		return "", timeout
	}}
	svc := NewQueryService(repo, client, nil)

	record, err := svc.Submit(context.Background(), 3, SubmitInput{Query: "q"})
	require.Error(t, err)
	var timeoutErr *inference.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)

	require.NotNil(t, record.Response)
	assert.Contains(t, *record.Response, "100ms")
	assert.Equal(t, model.QueryStatusFailed, record.Status)
}

func TestSubmitCreateFailureDoesNotCallInference(t *testing.T) {
	repo := newFakeQueryRecordRepo()
	repo.createErr = errors.New("db down")
	called := false
	client := &fakeInferenceClient{fn: func(_ context.Context, _ inference.AskRequest) (string, error) {
		called = true
		return "ok", nil
	}}
	svc := NewQueryService(repo, client, nil)

	_, err := svc.Submit(context.Background(), 1, SubmitInput{Query: "q"})
	require.Error(t, err)
	assert.False(t, called)
}

func TestSubmitPassesMetadataThrough(t *testing.T) {
	repo := newFakeQueryRecordRepo()
	client := &fakeInferenceClient{fn: func(_ context.Context, req inference.AskRequest) (string, error) {
		assert.Equal(t, "mobile", req.Metadata["source"])
		return "ok", nil
	}}
	svc := NewQueryService(repo, client, nil)

	record, err := svc.Submit(context.Background(), 1, SubmitInput{
		Query:    "q",
		Metadata: model.JSONMap{"source": "mobile"},
	})
	require.NoError(t, err)
	assert.Equal(t, "mobile", record.Metadata["source"])
}

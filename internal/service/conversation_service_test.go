package service

import (
	"context"
	"testing"
	"time"

	"athlete-care-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagingQueryRecordRepo 记录 FindWithPagination 收到的参数。
type pagingQueryRecordRepo struct {
	fakeQueryRecordRepo
	gotConversationID string
	gotLimit          int
	gotOffset         int
	summaries         []model.ConversationSummary
}

func (p *pagingQueryRecordRepo) FindWithPagination(_ context.Context, _ uint, conversationID string, limit, offset int) ([]model.QueryRecord, int64, error) {
	p.gotConversationID = conversationID
	p.gotLimit = limit
	p.gotOffset = offset
	return []model.QueryRecord{}, 0, nil
}

func (p *pagingQueryRecordRepo) SummarizeConversations(_ context.Context, _ uint) ([]model.ConversationSummary, error) {
	return p.summaries, nil
}

func TestHistoryLimitClamping(t *testing.T) {
	testCases := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "零值取默认", limit: 0, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "负数取默认", limit: -5, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "超上限截断", limit: 500, offset: 10, wantLimit: 100, wantOffset: 10},
		{name: "合法值透传", limit: 20, offset: 40, wantLimit: 20, wantOffset: 40},
		{name: "负偏移归零", limit: 20, offset: -1, wantLimit: 20, wantOffset: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &pagingQueryRecordRepo{}
			svc := NewConversationService(repo)

			_, _, err := svc.History(context.Background(), 1, "", tc.limit, tc.offset)
			require.NoError(t, err)
			assert.Equal(t, tc.wantLimit, repo.gotLimit)
			assert.Equal(t, tc.wantOffset, repo.gotOffset)
		})
	}
}

func TestHistoryScopesByConversation(t *testing.T) {
	repo := &pagingQueryRecordRepo{}
	svc := NewConversationService(repo)

	_, _, err := svc.History(context.Background(), 1, "c9", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "c9", repo.gotConversationID)
}

func TestListConversationsReturnsSummaries(t *testing.T) {
	now := time.Now()
	repo := &pagingQueryRecordRepo{summaries: []model.ConversationSummary{
		{ConversationID: "c2", MessageCount: 4, LastMessage: "最近的问题", LastMessageAt: now},
		{ConversationID: "c1", MessageCount: 1, LastMessage: "更早的问题", LastMessageAt: now.Add(-time.Hour)},
	}}
	svc := NewConversationService(repo)

	summaries, err := svc.ListConversations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "c2", summaries[0].ConversationID)
	assert.Equal(t, int64(4), summaries[0].MessageCount)
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"athlete-care-go/internal/model"
	"athlete-care-go/pkg/es"
	"athlete-care-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
)

// SearchService 提供对已完成问答记录的全文检索。
// 同时实现 HistoryIndexer，由状态机在记录完成后调用。
type SearchService interface {
	HistoryIndexer
	SearchHistory(ctx context.Context, ownerID uint, query string, size int) ([]model.EsQueryDocument, error)
}

type searchService struct {
	esClient  *elasticsearch.Client
	indexName string
}

// NewSearchService 创建一个新的 SearchService 实例。
func NewSearchService(esClient *elasticsearch.Client, indexName string) SearchService {
	return &searchService{
		esClient:  esClient,
		indexName: indexName,
	}
}

// IndexCompleted 将一条 COMPLETED 记录写入搜索索引。
func (s *searchService) IndexCompleted(ctx context.Context, record *model.QueryRecord) error {
	if record.Status != model.QueryStatusCompleted || record.Response == nil {
		return nil
	}
	doc := model.EsQueryDocument{
		RecordID:       record.ID,
		OwnerID:        record.OwnerID,
		ConversationID: record.ConversationID,
		Query:          record.Query,
		Answer:         *record.Response,
		CreatedAt:      record.CreatedAt,
	}
	return es.IndexQueryDocument(ctx, s.indexName, doc)
}

// SearchHistory 在当前用户的问答历史中做全文检索。
func (s *searchService) SearchHistory(ctx context.Context, ownerID uint, query string, size int) ([]model.EsQueryDocument, error) {
	if size <= 0 {
		size = 10
	}

	searchBody := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":  query,
							"fields": []string{"query", "answer"},
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"owner_id": ownerID},
					},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"created_at": map[string]interface{}{"order": "desc"}},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchBody); err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(s.indexName),
		s.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search query history: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Errorf("[SearchService] Elasticsearch 返回错误: %s", res.String())
		return nil, fmt.Errorf("elasticsearch returned error: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source model.EsQueryDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	docs := make([]model.EsQueryDocument, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

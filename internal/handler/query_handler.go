// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"athlete-care-go/internal/model"
	"athlete-care-go/internal/service"
	"athlete-care-go/pkg/inference"
	"athlete-care-go/pkg/log"
	"athlete-care-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// QueryHandler 处理问答提交与对话历史相关的 API 请求。
type QueryHandler struct {
	queryService        service.QueryService
	conversationService service.ConversationService
}

// NewQueryHandler 创建一个新的 QueryHandler 实例。
func NewQueryHandler(queryService service.QueryService, conversationService service.ConversationService) *QueryHandler {
	return &QueryHandler{
		queryService:        queryService,
		conversationService: conversationService,
	}
}

// SubmitRequest 定义了问答提交 API 的请求体结构。
// query 非空与长度上限在绑定层校验，核心逻辑不再重复检查。
type SubmitRequest struct {
	Query          string                 `json:"query" binding:"required,max=4000"`
	ConversationID string                 `json:"conversationId" binding:"omitempty,uuid"`
	Context        string                 `json:"context"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// Submit 处理问答提交请求。
// 失败的提交同样会留下一条 FAILED 的对话记录，同时向调用方返回错误描述。
func (h *QueryHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Submit: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "无效的请求负载：query 不能为空且长度受限",
		})
		return
	}

	claims := c.MustGet("claims").(*token.CustomClaims)

	record, err := h.queryService.Submit(c.Request.Context(), claims.UserID, service.SubmitInput{
		Query:          req.Query,
		ConversationID: req.ConversationID,
		Context:        req.Context,
		Metadata:       model.JSONMap(req.Metadata),
	})
	if err != nil {
		status := submitErrorStatus(err)
		log.Warnf("Submit: query failed for user %d, error: %v", claims.UserID, err)
		c.JSON(status, gin.H{
			"code":    status,
			"message": err.Error(),
			"data":    record,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    record,
	})
}

// submitErrorStatus 将失败分类映射为 HTTP 状态码。
func submitErrorStatus(err error) int {
	var timeoutErr *inference.TimeoutError
	var upstreamErr *inference.UpstreamError
	var transportErr *inference.TransportError
	switch {
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &upstreamErr), errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// History 处理分页获取问答历史的请求。
func (h *QueryHandler) History(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)

	conversationID := c.Query("conversationId")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	records, total, err := h.conversationService.History(c.Request.Context(), claims.UserID, conversationID, limit, offset)
	if err != nil {
		log.Errorf("History: failed for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "获取对话历史失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"records": records,
			"total":   total,
			"hasMore": int64(offset+limit) < total,
		},
	})
}

// ListConversations 处理获取对话概览的请求。
func (h *QueryHandler) ListConversations(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)

	summaries, err := h.conversationService.ListConversations(c.Request.Context(), claims.UserID)
	if err != nil {
		log.Errorf("ListConversations: failed for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "获取对话列表失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    summaries,
	})
}

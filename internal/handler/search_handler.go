package handler

import (
	"net/http"
	"strconv"

	"athlete-care-go/internal/service"
	"athlete-care-go/pkg/log"
	"athlete-care-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// SearchHandler 负责处理问答历史全文检索的 API 请求。
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler 创建一个新的 SearchHandler 实例。
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchHistory 在当前用户的问答历史中做全文检索。
func (h *SearchHandler) SearchHistory(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的查询参数"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		size = 10
	}

	claims := c.MustGet("claims").(*token.CustomClaims)
	docs, err := h.searchService.SearchHistory(c.Request.Context(), claims.UserID, query, size)
	if err != nil {
		log.Errorf("SearchHistory: failed for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "搜索失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": docs})
}

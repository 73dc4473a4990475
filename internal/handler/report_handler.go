package handler

import (
	"errors"
	"net/http"
	"strconv"

	"athlete-care-go/internal/service"
	"athlete-care-go/pkg/log"
	"athlete-care-go/pkg/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler 负责处理运动员报告文件相关的 API 请求。
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler 创建一个新的 ReportHandler 实例。
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Upload 处理报告文件上传请求（multipart 表单，字段名 file）。
func (h *ReportHandler) Upload(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)
	athleteID, err := strconv.ParseUint(c.Param("athleteId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 ID"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "缺少上传文件"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "读取上传文件失败"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	report, err := h.reportService.Upload(c.Request.Context(), claims.UserID, uint(athleteID),
		fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "运动员档案不存在"})
			return
		}
		log.Errorf("UploadReport: failed for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "上传报告失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": report})
}

// ListByAthlete 处理获取某运动员全部报告元数据的请求。
func (h *ReportHandler) ListByAthlete(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)
	athleteID, err := strconv.ParseUint(c.Param("athleteId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 ID"})
		return
	}

	reports, err := h.reportService.ListByAthlete(uint(athleteID), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "运动员档案不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取报告列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": reports})
}

// DownloadURL 为某份报告生成预签名下载链接。
func (h *ReportHandler) DownloadURL(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 ID"})
		return
	}

	url, err := h.reportService.DownloadURL(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "报告不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "生成下载链接失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{"url": url}})
}

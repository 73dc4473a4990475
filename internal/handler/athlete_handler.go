package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"athlete-care-go/internal/model"
	"athlete-care-go/internal/service"
	"athlete-care-go/pkg/log"
	"athlete-care-go/pkg/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AthleteHandler 负责处理运动员档案相关的 API 请求。
type AthleteHandler struct {
	athleteService service.AthleteService
}

// NewAthleteHandler 创建一个新的 AthleteHandler 实例。
func NewAthleteHandler(athleteService service.AthleteService) *AthleteHandler {
	return &AthleteHandler{athleteService: athleteService}
}

// AthleteRequest 定义了创建/更新运动员档案的请求体结构。
type AthleteRequest struct {
	Name      string `json:"name" binding:"required"`
	Sport     string `json:"sport"`
	BirthDate string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes"`
}

func (r *AthleteRequest) toModel() *model.Athlete {
	athlete := &model.Athlete{
		Name:  r.Name,
		Sport: r.Sport,
		Notes: r.Notes,
	}
	if r.BirthDate != "" {
		if t, err := time.Parse("2006-01-02", r.BirthDate); err == nil {
			athlete.BirthDate = &t
		}
	}
	return athlete
}

// Create 处理创建运动员档案的请求。
func (h *AthleteHandler) Create(c *gin.Context) {
	var req AthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "无效的请求负载：name 不能为空",
		})
		return
	}

	claims := c.MustGet("claims").(*token.CustomClaims)
	athlete := req.toModel()
	if err := h.athleteService.Create(claims.UserID, athlete); err != nil {
		log.Errorf("CreateAthlete: failed for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "创建运动员档案失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": athlete})
}

// Get 处理获取单个运动员档案的请求。
func (h *AthleteHandler) Get(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 ID"})
		return
	}

	athlete, err := h.athleteService.Get(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "运动员档案不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取运动员档案失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": athlete})
}

// List 处理分页获取运动员档案列表的请求。
func (h *AthleteHandler) List(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	athletes, total, err := h.athleteService.List(claims.UserID, offset, limit)
	if err != nil {
		log.Errorf("ListAthletes: failed for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取运动员列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"athletes": athletes, "total": total},
	})
}

// Update 处理更新运动员档案的请求。
func (h *AthleteHandler) Update(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 ID"})
		return
	}

	var req AthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}

	athlete := req.toModel()
	athlete.ID = uint(id)
	if err := h.athleteService.Update(claims.UserID, athlete); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "运动员档案不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "更新运动员档案失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}

// Delete 处理删除运动员档案的请求。
func (h *AthleteHandler) Delete(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 ID"})
		return
	}

	if err := h.athleteService.Delete(uint(id), claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "运动员档案不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "删除运动员档案失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}

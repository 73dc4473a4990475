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

// TreatmentPlanHandler 负责处理治疗方案相关的 API 请求。
type TreatmentPlanHandler struct {
	planService service.TreatmentPlanService
}

// NewTreatmentPlanHandler 创建一个新的 TreatmentPlanHandler 实例。
func NewTreatmentPlanHandler(planService service.TreatmentPlanService) *TreatmentPlanHandler {
	return &TreatmentPlanHandler{planService: planService}
}

// TreatmentPlanRequest 定义了创建/更新治疗方案的请求体结构。
type TreatmentPlanRequest struct {
	AthleteID   uint   `json:"athleteId"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status"`
}

func (r *TreatmentPlanRequest) toModel() *model.TreatmentPlan {
	plan := &model.TreatmentPlan{
		AthleteID:   r.AthleteID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
	if r.StartDate != "" {
		if t, err := time.Parse("2006-01-02", r.StartDate); err == nil {
			plan.StartDate = &t
		}
	}
	if r.EndDate != "" {
		if t, err := time.Parse("2006-01-02", r.EndDate); err == nil {
			plan.EndDate = &t
		}
	}
	return plan
}

// Create 处理创建治疗方案的请求。
func (h *TreatmentPlanHandler) Create(c *gin.Context) {
	var req TreatmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AthleteID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "无效的请求负载：athleteId 和 title 不能为空",
		})
		return
	}

	claims := c.MustGet("claims").(*token.CustomClaims)
	plan := req.toModel()
	if err := h.planService.Create(claims.UserID, plan); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "运动员档案不存在"})
			return
		}
		log.Errorf("CreateTreatmentPlan: failed for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "创建治疗方案失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": plan})
}

// Get 处理获取单个治疗方案的请求。
func (h *TreatmentPlanHandler) Get(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 ID"})
		return
	}

	plan, err := h.planService.Get(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "治疗方案不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取治疗方案失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": plan})
}

// ListByAthlete 处理获取某运动员全部治疗方案的请求。
func (h *TreatmentPlanHandler) ListByAthlete(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)
	athleteID, err := strconv.ParseUint(c.Param("athleteId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 ID"})
		return
	}

	plans, err := h.planService.ListByAthlete(uint(athleteID), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "运动员档案不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取治疗方案列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": plans})
}

// Update 处理更新治疗方案的请求。
func (h *TreatmentPlanHandler) Update(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 ID"})
		return
	}

	var req TreatmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}

	plan := req.toModel()
	plan.ID = uint(id)
	if err := h.planService.Update(claims.UserID, plan); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "治疗方案不存在"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}

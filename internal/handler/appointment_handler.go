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

// AppointmentHandler 负责处理预约相关的 API 请求。
type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

// NewAppointmentHandler 创建一个新的 AppointmentHandler 实例。
func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// CreateAppointmentRequest 定义了创建预约的请求体结构。
type CreateAppointmentRequest struct {
	AthleteID       uint      `json:"athleteId" binding:"required"`
	StartsAt        time.Time `json:"startsAt" binding:"required"`
	DurationMinutes int       `json:"durationMinutes"`
	Notes           string    `json:"notes"`
}

// Create 处理创建预约的请求。
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "无效的请求负载：athleteId 和 startsAt 不能为空",
		})
		return
	}

	claims := c.MustGet("claims").(*token.CustomClaims)
	appointment := &model.Appointment{
		AthleteID:       req.AthleteID,
		StartsAt:        req.StartsAt,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}
	if err := h.appointmentService.Create(claims.UserID, appointment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "运动员档案不存在"})
			return
		}
		log.Errorf("CreateAppointment: failed for user %d, error: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "创建预约失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": appointment})
}

// ListByAthlete 处理获取某运动员全部预约的请求。
func (h *AppointmentHandler) ListByAthlete(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)
	athleteID, err := strconv.ParseUint(c.Param("athleteId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 ID"})
		return
	}

	appointments, err := h.appointmentService.ListByAthlete(uint(athleteID), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "运动员档案不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取预约列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": appointments})
}

// ListByRange 处理按时间窗口获取预约的请求，from/to 为 RFC3339 格式。
func (h *AppointmentHandler) ListByRange(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 from 参数"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 to 参数"})
		return
	}

	appointments, err := h.appointmentService.ListByRange(claims.UserID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "获取预约列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": appointments})
}

// UpdateStatusRequest 定义了更新预约状态的请求体结构。
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus 处理更新预约状态的请求。
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的 ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载：status 不能为空"})
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(uint(id), claims.UserID, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "预约不存在"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": appointment})
}

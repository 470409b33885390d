package auth

import (
	"strconv"

	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the PIN gate.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the gate routes. The router must already run the device middleware.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/auth/questions", h.questions)
	router.POST("/auth/lock", h.lock)

	gate := router.Group("/auth/gate")
	{
		gate.GET("", h.view)
		for _, nav := range []Nav{NavChoice, NavNew, NavLogin, NavForgot, NavBack} {
			gate.POST("/"+string(nav), h.navigate(nav))
		}
		gate.POST("/name", h.setName)
		gate.POST("/digit", h.pressDigit)
		gate.POST("/delete", h.deleteDigit)
		gate.POST("/submit", h.submit)
		gate.PUT("/questions/:slot", h.setSetupQuestion)
		gate.PUT("/recovery/:slot", h.setRecoveryAnswer)
	}
}

func (h *Handler) questions(c *gin.Context) {
	common.RespondOK(c, "Security questions retrieved.", h.service.Questions())
}

func (h *Handler) view(c *gin.Context) {
	common.RespondOK(c, "", h.service.View(c.Request.Context(), common.GetDeviceIDFromContext(c)))
}

func (h *Handler) navigate(nav Nav) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := h.service.Navigate(c.Request.Context(), common.GetDeviceIDFromContext(c), nav)
		if err != nil {
			common.RespondWithError(c, err)
			return
		}
		common.RespondOK(c, "", v)
	}
}

func (h *Handler) setName(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	common.RespondOK(c, "", h.service.SetName(c.Request.Context(), common.GetDeviceIDFromContext(c), req.Name))
}

func (h *Handler) pressDigit(c *gin.Context) {
	var req DigitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	common.RespondOK(c, "", h.service.PressDigit(c.Request.Context(), common.GetDeviceIDFromContext(c), req.Digit))
}

func (h *Handler) deleteDigit(c *gin.Context) {
	common.RespondOK(c, "", h.service.DeleteDigit(c.Request.Context(), common.GetDeviceIDFromContext(c)))
}

func (h *Handler) submit(c *gin.Context) {
	deviceID := common.GetDeviceIDFromContext(c)
	v, err := h.service.Submit(c.Request.Context(), deviceID)
	if err != nil {
		h.logger.Error("Gate submit failed", zap.String("device_id", deviceID), zap.Error(err))
		common.RespondWithError(c, err)
		return
	}
	msg := ""
	if v.Unlocked {
		msg = "Unlocked."
	}
	common.RespondOK(c, msg, v)
}

func (h *Handler) setSetupQuestion(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid question slot."))
		return
	}
	var req SetupQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	v, err := h.service.SetSetupQuestion(c.Request.Context(), common.GetDeviceIDFromContext(c), slot, req.Question, req.Answer)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", v)
}

func (h *Handler) setRecoveryAnswer(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid answer slot."))
		return
	}
	var req RecoveryAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	v, err := h.service.SetRecoveryAnswer(c.Request.Context(), common.GetDeviceIDFromContext(c), slot, req.Answer)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", v)
}

func (h *Handler) lock(c *gin.Context) {
	common.RespondOK(c, "Locked.", h.service.Lock(c.Request.Context(), common.GetDeviceIDFromContext(c)))
}

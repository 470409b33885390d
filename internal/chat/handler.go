package chat

import (
	"lsers_hub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves in-app chat.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts /chats for unlocked users and /admin/chats for administrators.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, unlockedMW, adminMW gin.HandlerFunc) {
	chats := router.Group("/chats", unlockedMW)
	{
		chats.POST("", h.open)
		chats.GET("/:chatId", h.history)
		chats.POST("/:chatId/messages", h.send)
		chats.POST("/:chatId/close", h.close)
	}

	admin := router.Group("/admin/chats", adminMW)
	{
		admin.GET("", h.list)
		admin.GET("/:chatId", h.view)
	}
}

func (h *Handler) open(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	session := common.GetSessionFromContext(c)
	thread, err := h.service.Open(c.Request.Context(), session.DeviceID, session, req.ProviderID, "")
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", thread)
}

func (h *Handler) history(c *gin.Context) {
	session := common.GetSessionFromContext(c)
	thread, err := h.service.History(c.Request.Context(), session.DeviceID, session, c.Param("chatId"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if thread == nil {
		common.RespondNoContent(c)
		return
	}
	common.RespondOK(c, "", thread)
}

func (h *Handler) send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	session := common.GetSessionFromContext(c)
	msg, err := h.service.Send(c.Request.Context(), session.DeviceID, session, c.Param("chatId"), req.Text)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if msg == nil {
		common.RespondNoContent(c)
		return
	}
	common.RespondCreated(c, "Message sent.", msg)
}

func (h *Handler) close(c *gin.Context) {
	h.service.Close(c.Request.Context(), common.GetDeviceIDFromContext(c), c.Param("chatId"))
	common.RespondNoContent(c)
}

func (h *Handler) list(c *gin.Context) {
	items := h.service.List(c.Request.Context(), common.GetDeviceIDFromContext(c))
	page, pageSize := common.GetPaginationParams(c)
	data, pagination := common.Paginate(items, page, pageSize)
	common.RespondPaginated(c, "Chats retrieved successfully.", data, pagination)
}

func (h *Handler) view(c *gin.Context) {
	thread, err := h.service.View(c.Request.Context(), common.GetDeviceIDFromContext(c), c.Param("chatId"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if thread == nil {
		common.RespondNoContent(c)
		return
	}
	common.RespondOK(c, "", thread)
}

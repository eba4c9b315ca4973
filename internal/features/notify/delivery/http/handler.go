package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lll-backend/internal/common/middleware"
	"lll-backend/internal/features/notify/service"
)

type NotifyHandler struct {
	service *service.Service
}

func NewNotifyHandler(service *service.Service) *NotifyHandler {
	return &NotifyHandler{service: service}
}

func (h *NotifyHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/notify", h.Notify)
}

// NotifyRequest is the server-to-server notification body.
type NotifyRequest struct {
	Secret     string      `json:"secret" binding:"required"`
	Kind       string      `json:"kind" binding:"required,oneof=generic winner deposit withdrawal"`
	TelegramID string      `json:"telegramId" binding:"omitempty,min=1"`
	ChatID     string      `json:"chatId" binding:"omitempty,min=1"`
	Message    string      `json:"message" binding:"omitempty,min=1"`
	Payload    interface{} `json:"payload"`
}

// @Summary Dispatch a notification
// @Description Sends a templated or custom message to a user's chat, gated by the shared webhook secret.
// @Tags notify
// @Accept json
// @Produce json
// @Param body body NotifyRequest true "Notification"
// @Success 200 {object} map[string]interface{} "Dispatched"
// @Failure 400 {object} models.ErrorResponse "Invalid payload or unresolvable target"
// @Failure 401 {object} models.ErrorResponse "Invalid secret"
// @Failure 502 {object} models.ErrorResponse "Transport failure"
// @Router /notify [post]
func (h *NotifyHandler) Notify(c *gin.Context) {
	var input NotifyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	err := h.service.Dispatch(c.Request.Context(), service.DispatchRequest{
		Secret:     input.Secret,
		Kind:       service.Kind(input.Kind),
		TelegramID: input.TelegramID,
		ChatID:     input.ChatID,
		Message:    input.Message,
		Payload:    input.Payload,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

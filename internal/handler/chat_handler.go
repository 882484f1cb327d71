package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nilecart/storefront_api/internal/service"
	"github.com/nilecart/storefront_api/internal/utils"
)

// ChatHandler handles the storefront assistant endpoint.
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Ask handles POST /v1/chat
func (h *ChatHandler) Ask(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	reply, err := h.chatService.Ask(c.Request.Context(), req.Message)
	if err != nil {
		var validation *service.ValidationError
		if errors.As(err, &validation) {
			utils.Error(c, 400, "VALIDATION_ERROR", validation.Message)
			return
		}
		log.Error().Err(err).Msg("Chat gateway request failed")
		utils.Error(c, 502, "GATEWAY_ERROR", "Assistant is unavailable, try again later")
		return
	}

	utils.Success(c, 200, "Reply generated", gin.H{"reply": reply})
}

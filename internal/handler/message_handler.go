package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openflea/fleamarket-backend/internal/common"
	"github.com/openflea/fleamarket-backend/internal/domain"
	"github.com/openflea/fleamarket-backend/internal/middleware"
	"github.com/openflea/fleamarket-backend/internal/service"
)

// MessageHandler handles private message HTTP requests
type MessageHandler struct {
	service service.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(service service.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send handles POST /messages
// @Summary Send a message or reply to a thread
// @Tags messages
// @Accept json
// @Produce json
// @Param request body domain.SendMessageRequest true "message payload"
// @Success 201 {object} common.APIResponse{data=domain.MessageResponse}
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid message payload", err)
		return
	}

	result, err := h.service.SendMessage(userID, &req)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, result)
}

// Inbox handles GET /messages/inbox
// @Summary Conversations with the latest visible message per thread
// @Tags messages
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.MessageResponse}
// @Router /messages/inbox [get]
func (h *MessageHandler) Inbox(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	rows, err := h.service.ListInbox(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to load inbox", err)
		return
	}

	common.SuccessResponse(c, rows, nil)
}

// Sent handles GET /messages/sent
// @Summary Conversations the user has sent messages in
// @Tags messages
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.MessageResponse}
// @Router /messages/sent [get]
func (h *MessageHandler) Sent(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	rows, err := h.service.ListSent(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to load sent box", err)
		return
	}

	common.SuccessResponse(c, rows, nil)
}

// UnreadCount handles GET /messages/unread-count
// @Summary Unread message count for the inbox badge
// @Tags messages
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /messages/unread-count [get]
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	count, err := h.service.UnreadCount(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to count unread messages", err)
		return
	}

	common.SuccessResponse(c, gin.H{"unread": count}, nil)
}

// GetConversation handles GET /messages/:id
// @Summary Resolve a message id to its full thread
// @Tags messages
// @Produce json
// @Param id path int true "message ID (head or any reply)"
// @Success 200 {object} common.APIResponse{data=domain.ConversationResponse}
// @Router /messages/{id} [get]
func (h *MessageHandler) GetConversation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid message id", err)
		return
	}

	conversation, err := h.service.GetConversation(userID, id)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, conversation, nil)
}

// DeleteConversation handles DELETE /messages/conversations/:id
// @Summary Soft-delete the user's side of a whole thread
// @Tags messages
// @Produce json
// @Param id path int true "thread head ID"
// @Success 204
// @Router /messages/conversations/{id} [delete]
func (h *MessageHandler) DeleteConversation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid conversation id", err)
		return
	}

	if err := h.service.DeleteConversation(userID, id); err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

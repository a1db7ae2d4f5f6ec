package handlers

import (
	"errors"
	"net/http"

	"hairrap/models"
	ai "hairrap/services/intelligence"
	"hairrap/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssistantHandler struct {
	Assistant *ai.Assistant
	Logger    *zap.Logger
}

func NewAssistantHandler(a *ai.Assistant, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{Assistant: a, Logger: logger}
}

func (h *AssistantHandler) fail(c *gin.Context, err error) {
	logger := getLogger(c, h.Logger)
	switch {
	case errors.Is(err, ai.ErrSessionNotFound):
		utils.JSONError(c, logger, http.StatusNotFound, "chat session not found", err.Error())
	case errors.Is(err, ai.ErrEmptyMessage):
		utils.JSONError(c, logger, http.StatusBadRequest, "invalid input", err.Error())
	default:
		logger.Error("assistant: request failed", zap.Error(err))
		utils.JSONError(c, logger, http.StatusInternalServerError, "assistant unavailable", err.Error())
	}
}

// ListSessions handles GET /api/assistant/sessions.
func (h *AssistantHandler) ListSessions(c *gin.Context) {
	sessions, err := h.Assistant.Sessions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession handles GET /api/assistant/sessions/:id.
func (h *AssistantHandler) GetSession(c *gin.Context) {
	sess, err := h.Assistant.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// DeleteSession handles DELETE /api/assistant/sessions/:id.
func (h *AssistantHandler) DeleteSession(c *gin.Context) {
	if err := h.Assistant.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SendMessage handles POST /api/assistant/messages.
func (h *AssistantHandler) SendMessage(c *gin.Context) {
	var req models.AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, getLogger(c, h.Logger), http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	resp, err := h.Assistant.Send(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lozanofamily/madrid-guide/domain"
	"github.com/lozanofamily/madrid-guide/usecase"
	"github.com/lozanofamily/madrid-guide/utils/log"
)

// ChatHandler exposes Chulapo, the AI guide.
type ChatHandler struct {
	svc *usecase.AssistantService
}

func NewChatHandler(svc *usecase.AssistantService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type chatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
}

type chatErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

// Chat runs one round trip against the completion backend. The response is
// always a single assistant message, never the raw provider envelope.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if len(req.Messages) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "messages are required")
	}
	for _, msg := range req.Messages {
		if msg.Role != domain.UserRole && msg.Role != domain.AssistantRole {
			return echo.NewHTTPError(http.StatusBadRequest, "role must be user or assistant")
		}
	}

	ctx := c.Request().Context()

	reply, err := h.svc.Reply(ctx, req.Messages)
	switch {
	case errors.Is(err, domain.ErrNoAPIKey):
		log.WithCtx(ctx).Error("chat request with no API key configured")
		return c.JSON(http.StatusInternalServerError, chatErrorResponse{
			Error: "API key not configured",
		})
	case errors.Is(err, domain.ErrExhausted):
		return c.JSON(http.StatusServiceUnavailable, chatErrorResponse{
			Error:  err.Error(),
			Status: http.StatusServiceUnavailable,
		})
	case err != nil:
		log.WithCtx(ctx).Error("chat request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, chatErrorResponse{
			Error: "internal error",
		})
	}

	return c.JSON(http.StatusOK, reply)
}

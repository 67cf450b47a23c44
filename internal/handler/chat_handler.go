package handler

import (
	"net/http"

	"app/internal/advisor"

	"github.com/labstack/echo/v4"
)

// パーツ相談チャット。返答はadvisorパッケージのルールベース生成
type ChatHandler struct{}

func NewChatHandler() *ChatHandler {
	return &ChatHandler{}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	Message string `json:"message"`
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/chat", h.chat)
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data"})
	}

	//直近のuser発言に返答する
	var last string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			last = req.Messages[i].Content
			break
		}
	}
	if last == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No user message"})
	}

	return c.JSON(http.StatusOK, ChatResponse{Message: advisor.GenerateResponse(last)})
}

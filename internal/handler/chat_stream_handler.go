package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"faq-assist-be/internal/dto"
	"faq-assist-be/internal/service"
	"faq-assist-be/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const wsTurnTimeout = 5 * time.Minute

// ChatStreamHandler serves the websocket variant of the streaming turn.
// Frames carry the same JSON records the SSE endpoint emits.
type ChatStreamHandler struct {
	chatService service.IChatService
}

func NewChatStreamHandler(chatService service.IChatService) *ChatStreamHandler {
	return &ChatStreamHandler{chatService: chatService}
}

func (h *ChatStreamHandler) RegisterRoutes(r fiber.Router) {
	r.Use("/faq/search/ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/faq/search/ws", websocket.New(h.handle))
}

func (h *ChatStreamHandler) handle(conn *websocket.Conn) {
	defer conn.Close()

	question := conn.Query("question")
	if strings.TrimSpace(question) == "" {
		_ = conn.WriteJSON(dto.NewErrorEvent("question is required"))
		return
	}
	topN, _ := strconv.Atoi(conn.Query("topN"))

	req := &dto.ChatRequest{
		Question:  question,
		SessionId: conn.Query("sessionId"),
		TopN:      topN,
	}

	emitter := stream.NewChannelEmitter(16)
	turnCtx, cancelTurn := context.WithTimeout(context.Background(), wsTurnTimeout)
	defer cancelTurn()
	go func() {
		<-turnCtx.Done()
		emitter.Cancel()
	}()

	// The read pump only watches for the client going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				emitter.Cancel()
				return
			}
		}
	}()

	_ = h.chatService.ProcessStreamingChat(turnCtx, req, emitter)

	for ev := range emitter.Events() {
		if conn.WriteJSON(ev.Data) != nil {
			emitter.Cancel()
			return
		}
	}
}

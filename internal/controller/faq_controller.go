package controller

import (
	"bufio"
	"context"
	"strings"
	"time"

	"faq-assist-be/internal/dto"
	"faq-assist-be/internal/pkg/serverutils"
	"faq-assist-be/internal/service"
	"faq-assist-be/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// streamTurnTimeout bounds one streaming turn end to end. Expiry trips the
// same cancellation flag a client disconnect does.
const streamTurnTimeout = 5 * time.Minute

const emitterBuffer = 16

type IFaqController interface {
	RegisterRoutes(r fiber.Router)
	SearchStream(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type faqController struct {
	chatService service.IChatService
	faqService  service.IFaqService
}

func NewFaqController(chatService service.IChatService, faqService service.IFaqService) IFaqController {
	return &faqController{
		chatService: chatService,
		faqService:  faqService,
	}
}

func (c *faqController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/faq")
	h.Get("/search/stream", c.SearchStream)
	h.Get("/search", c.Search)
	h.Get("/list", c.List)
	h.Post("/session/clear", c.ClearSession)
	h.Get("/status", c.Status)
}

// SearchStream runs one chat turn over SSE. The turn itself runs on the
// worker pool; this handler only installs the body stream writer that
// drains the emitter. A failed write cancels the turn.
func (c *faqController) SearchStream(ctx *fiber.Ctx) error {
	req, err := chatRequestFromQuery(ctx)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	emitter := stream.NewChannelEmitter(emitterBuffer)
	turnCtx, cancelTurn := context.WithTimeout(context.Background(), streamTurnTimeout)
	go func() {
		<-turnCtx.Done()
		emitter.Cancel()
	}()

	// Pool saturation is already reported on the stream as a busy error
	// event, so the submit error is not surfaced here.
	_ = c.chatService.ProcessStreamingChat(turnCtx, req, emitter)

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancelTurn()
		for ev := range emitter.Events() {
			if stream.WriteSSE(w, ev) != nil {
				emitter.Cancel()
				return
			}
		}
	}))
	return nil
}

func (c *faqController) Search(ctx *fiber.Ctx) error {
	req, err := chatRequestFromQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.ProcessChat(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success process chat", res))
}

func (c *faqController) List(ctx *fiber.Ctx) error {
	faqs, err := c.faqService.GetAllFaq()
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list faq", faqs))
}

func (c *faqController) ClearSession(ctx *fiber.Ctx) error {
	var req dto.ClearSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	c.chatService.ClearSession(req.SessionId)
	return ctx.JSON(serverutils.SuccessResponse("Session cleared", nil))
}

func (c *faqController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Status", c.chatService.Status(ctx.Context())))
}

func chatRequestFromQuery(ctx *fiber.Ctx) (*dto.ChatRequest, error) {
	req := &dto.ChatRequest{
		Question:  ctx.Query("question"),
		SessionId: ctx.Query("sessionId"),
		TopN:      ctx.QueryInt("topN", 0),
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "question is required")
	}
	if err := serverutils.ValidateRequest(*req); err != nil {
		return nil, err
	}
	return req, nil
}

// Package handler exposes the voice call flow over HTTP: the call initiation
// API and the Twilio webhooks that drive each turn of the conversation.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"medicare-call-server/internal/apierrors"
	"medicare-call-server/internal/events"
	"medicare-call-server/internal/observability"
	"medicare-call-server/internal/voicecall/processor"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// CallProcessor drives the conversation; one method per endpoint.
type CallProcessor interface {
	InitiateCall(ctx context.Context, phone string) (string, error)
	Welcome(ctx context.Context, callSID, phone string) (string, error)
	ConversationTurn(ctx context.Context, input processor.TurnInput) (string, error)
	ConfirmTurn(ctx context.Context, input processor.TurnInput) (string, error)
	HandleCallStatus(ctx context.Context, callSID, status string) error
}

// CallCounter backs the status endpoint's recent call volume figure.
type CallCounter interface {
	CountCallsSince(ctx context.Context, since time.Time) (int, error)
}

type Handler struct {
	processor   CallProcessor
	calls       CallCounter
	bus         *events.Bus
	logger      *observability.Logger
	upgrader    websocket.Upgrader
	maskedSID   string
	phoneNumber string
	dbHost      string
}

func New(proc CallProcessor, calls CallCounter, bus *events.Bus, logger *observability.Logger,
	maskedSID, phoneNumber, dbHost string) Handler {
	return Handler{
		processor: proc,
		calls:     calls,
		bus:       bus,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		maskedSID:   maskedSID,
		phoneNumber: phoneNumber,
		dbHost:      dbHost,
	}
}

// InitiateCallRequest is the body for POST /api/call
type InitiateCallRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// HandleInitiateCall handles POST /api/call
func (h *Handler) HandleInitiateCall(c *gin.Context) {
	ctx := c.Request.Context()

	var req InitiateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	callSID, err := h.processor.InitiateCall(ctx, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, processor.ErrPhoneRequired):
			apierrors.BadRequest(c, "PHONE_REQUIRED", "Phone number is required")
		case errors.Is(err, processor.ErrRateLimited):
			apierrors.TooManyRequests(c, "Too many calls to this number, please try again later")
		default:
			apierrors.InternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Call initiated successfully",
		"call_sid": callSID,
	})
}

// turnInput collects the Twilio webhook form fields. A Confidence field
// Twilio did not send is treated as fully confident; a reported value is
// taken as-is, zero included.
func turnInput(c *gin.Context) processor.TurnInput {
	confidence := 1.0
	if raw := c.PostForm("Confidence"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			confidence = parsed
		}
	}
	return processor.TurnInput{
		CallSID:      c.PostForm("CallSid"),
		SpeechResult: c.PostForm("SpeechResult"),
		Confidence:   confidence,
		To:           c.PostForm("To"),
		From:         c.PostForm("From"),
	}
}

func (h *Handler) respondTwiML(c *gin.Context, doc string, err error) {
	if err != nil {
		h.logger.Error(c.Request.Context(), "failed to build TwiML response", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, doc)
}

// HandleWelcome handles POST /api/welcome, Twilio's webhook for an answered
// call.
func (h *Handler) HandleWelcome(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := h.processor.Welcome(ctx, c.PostForm("CallSid"), c.PostForm("To"))
	h.respondTwiML(c, doc, err)
}

// HandleConversation handles POST /api/conversation, one gathered utterance.
func (h *Handler) HandleConversation(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := h.processor.ConversationTurn(ctx, turnInput(c))
	h.respondTwiML(c, doc, err)
}

// HandleConfirm handles POST /api/confirm_appointment, the caller's reply to
// the confirmation readback.
func (h *Handler) HandleConfirm(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := h.processor.ConfirmTurn(ctx, turnInput(c))
	h.respondTwiML(c, doc, err)
}

// HandleCallStatus handles POST /api/call_status. Twilio expects 200
// regardless, so failures are only logged.
func (h *Handler) HandleCallStatus(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.processor.HandleCallStatus(ctx, c.PostForm("CallSid"), c.PostForm("CallStatus")); err != nil {
		h.logger.Error(ctx, "failed to process call status", err)
	}
	c.Status(http.StatusOK)
}

// HandleStatus handles GET /status with a config summary and recent call
// volume. The account SID is masked, never the full value.
func (h *Handler) HandleStatus(c *gin.Context) {
	ctx := c.Request.Context()

	recentCalls := 0
	if count, err := h.calls.CountCallsSince(ctx, time.Now().Add(-24*time.Hour)); err == nil {
		recentCalls = count
	} else {
		h.logger.Error(ctx, "failed to count recent calls", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "running",
		"twilio": gin.H{
			"account_sid":  h.maskedSID,
			"phone_number": h.phoneNumber,
		},
		"database":  h.dbHost,
		"calls_24h": recentCalls,
	})
}

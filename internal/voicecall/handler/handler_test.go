package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"medicare-call-server/internal/events"
	"medicare-call-server/internal/observability"
	"medicare-call-server/internal/voicecall/processor"

	"github.com/gin-gonic/gin"
)

type stubProcessor struct {
	initiateFn     func(ctx context.Context, phone string) (string, error)
	conversationFn func(ctx context.Context, input processor.TurnInput) (string, error)
	confirmFn      func(ctx context.Context, input processor.TurnInput) (string, error)
	statusFn       func(ctx context.Context, callSID, status string) error
}

func (s *stubProcessor) InitiateCall(ctx context.Context, phone string) (string, error) {
	return s.initiateFn(ctx, phone)
}

func (s *stubProcessor) Welcome(context.Context, string, string) (string, error) {
	return "<Response></Response>", nil
}

func (s *stubProcessor) ConversationTurn(ctx context.Context, input processor.TurnInput) (string, error) {
	return s.conversationFn(ctx, input)
}

func (s *stubProcessor) ConfirmTurn(ctx context.Context, input processor.TurnInput) (string, error) {
	return s.confirmFn(ctx, input)
}

func (s *stubProcessor) HandleCallStatus(ctx context.Context, callSID, status string) error {
	return s.statusFn(ctx, callSID, status)
}

type stubCounter struct {
	count int
	err   error
}

func (s *stubCounter) CountCallsSince(context.Context, time.Time) (int, error) {
	return s.count, s.err
}

func newTestRouter(proc CallProcessor, counter CallCounter) (*gin.Engine, Handler) {
	gin.SetMode(gin.TestMode)
	h := New(proc, counter, events.NewBus(), observability.NewLogger(),
		"AC1234...", "+15550001111", "db.internal:5432")
	router := gin.New()
	router.POST("/api/call", h.HandleInitiateCall)
	router.POST("/api/conversation", h.HandleConversation)
	router.POST("/api/confirm_appointment", h.HandleConfirm)
	router.POST("/api/call_status", h.HandleCallStatus)
	router.GET("/status", h.HandleStatus)
	router.GET("/", h.HandleIndex)
	return router, h
}

func TestHandleInitiateCall(t *testing.T) {
	proc := &stubProcessor{
		initiateFn: func(_ context.Context, phone string) (string, error) {
			if phone != "+15551234567" {
				t.Errorf("phone = %q", phone)
			}
			return "CA123", nil
		},
	}
	router, _ := newTestRouter(proc, &stubCounter{})

	req := httptest.NewRequest(http.MethodPost, "/api/call",
		strings.NewReader(`{"phone": "+15551234567"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["call_sid"] != "CA123" || body["success"] != true {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestHandleInitiateCallMissingPhone(t *testing.T) {
	proc := &stubProcessor{
		initiateFn: func(context.Context, string) (string, error) {
			t.Fatal("processor should not be called")
			return "", nil
		},
	}
	router, _ := newTestRouter(proc, &stubCounter{})

	req := httptest.NewRequest(http.MethodPost, "/api/call", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", body.Code)
	}
	if body.Error != "Phone is required" {
		t.Errorf("error = %q, want field-level validation message", body.Error)
	}
}

func TestHandleInitiateCallMalformedJSON(t *testing.T) {
	proc := &stubProcessor{
		initiateFn: func(context.Context, string) (string, error) {
			t.Fatal("processor should not be called")
			return "", nil
		},
	}
	router, _ := newTestRouter(proc, &stubCounter{})

	req := httptest.NewRequest(http.MethodPost, "/api/call", strings.NewReader(`{"phone": `))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_INPUT") {
		t.Errorf("body = %s, want INVALID_INPUT code", w.Body.String())
	}
}

func TestHandleInitiateCallRateLimited(t *testing.T) {
	proc := &stubProcessor{
		initiateFn: func(context.Context, string) (string, error) {
			return "", processor.ErrRateLimited
		},
	}
	router, _ := newTestRouter(proc, &stubCounter{})

	req := httptest.NewRequest(http.MethodPost, "/api/call",
		strings.NewReader(`{"phone": "+15551234567"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleConversationParsesWebhookForm(t *testing.T) {
	var got processor.TurnInput
	proc := &stubProcessor{
		conversationFn: func(_ context.Context, input processor.TurnInput) (string, error) {
			got = input
			return "<Response><Say>ok</Say></Response>", nil
		},
	}
	router, _ := newTestRouter(proc, &stubCounter{})

	w := postForm(router, "/api/conversation", url.Values{
		"CallSid":      {"CA123"},
		"SpeechResult": {"my name is john smith"},
		"Confidence":   {"0.87"},
		"To":           {"+15551230000"},
		"From":         {"+15550001111"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
		t.Errorf("content type = %q, want text/xml", ct)
	}
	if !strings.Contains(w.Body.String(), "<Say>ok</Say>") {
		t.Errorf("body = %s", w.Body.String())
	}

	if got.CallSID != "CA123" || got.SpeechResult != "my name is john smith" ||
		got.Confidence != 0.87 || got.To != "+15551230000" || got.From != "+15550001111" {
		t.Errorf("unexpected turn input: %+v", got)
	}
}

func TestHandleConversationConfidenceDefaults(t *testing.T) {
	var got processor.TurnInput
	proc := &stubProcessor{
		conversationFn: func(_ context.Context, input processor.TurnInput) (string, error) {
			got = input
			return "<Response></Response>", nil
		},
	}
	router, _ := newTestRouter(proc, &stubCounter{})

	// No Confidence field at all: treated as fully confident.
	postForm(router, "/api/conversation", url.Values{
		"CallSid":      {"CA123"},
		"SpeechResult": {"hello"},
	})
	if got.Confidence != 1.0 {
		t.Errorf("absent Confidence = %v, want 1.0", got.Confidence)
	}

	// A reported zero is passed through, not defaulted.
	postForm(router, "/api/conversation", url.Values{
		"CallSid":      {"CA123"},
		"SpeechResult": {"hello"},
		"Confidence":   {"0.0"},
	})
	if got.Confidence != 0 {
		t.Errorf("reported Confidence = %v, want 0", got.Confidence)
	}
}

func TestHandleConfirm(t *testing.T) {
	proc := &stubProcessor{
		confirmFn: func(_ context.Context, input processor.TurnInput) (string, error) {
			if input.CallSID != "CA123" {
				t.Errorf("call sid = %q", input.CallSID)
			}
			return "<Response><Say>confirmed</Say></Response>", nil
		},
	}
	router, _ := newTestRouter(proc, &stubCounter{})

	w := postForm(router, "/api/confirm_appointment", url.Values{
		"CallSid":      {"CA123"},
		"SpeechResult": {"yes"},
		"Confidence":   {"0.9"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "confirmed") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleCallStatusAlwaysOK(t *testing.T) {
	proc := &stubProcessor{
		statusFn: func(_ context.Context, callSID, status string) error {
			if callSID != "CA123" || status != "completed" {
				t.Errorf("got %q %q", callSID, status)
			}
			return errors.New("db down")
		},
	}
	router, _ := newTestRouter(proc, &stubCounter{})

	w := postForm(router, "/api/call_status", url.Values{
		"CallSid":    {"CA123"},
		"CallStatus": {"completed"},
	})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 even on processor failure", w.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	router, _ := newTestRouter(&stubProcessor{}, &stubCounter{count: 7})

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Status string `json:"status"`
		Twilio struct {
			AccountSID  string `json:"account_sid"`
			PhoneNumber string `json:"phone_number"`
		} `json:"twilio"`
		Database string `json:"database"`
		Calls24h int    `json:"calls_24h"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "running" || body.Twilio.AccountSID != "AC1234..." || body.Calls24h != 7 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestHandleIndex(t *testing.T) {
	router, _ := newTestRouter(&stubProcessor{}, &stubCounter{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Medicare Appointment Booking System") {
		t.Error("index page missing title")
	}
}

type stubValidator struct {
	valid bool
	url   string
}

func (s *stubValidator) ValidateSignature(url string, _ map[string]string, _ string) bool {
	s.url = url
	return s.valid
}

func TestTwilioSignatureMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := observability.NewLogger()

	newRouter := func(validator SignatureValidator, enforce bool) *gin.Engine {
		router := gin.New()
		router.POST("/api/conversation",
			TwilioSignatureMiddleware(validator, "https://example.com", enforce, logger),
			func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	t.Run("disabled in debug", func(t *testing.T) {
		router := newRouter(&stubValidator{valid: false}, false)
		w := postForm(router, "/api/conversation", url.Values{"CallSid": {"CA1"}})
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want pass-through", w.Code)
		}
	})

	t.Run("missing signature rejected", func(t *testing.T) {
		router := newRouter(&stubValidator{valid: true}, true)
		w := postForm(router, "/api/conversation", url.Values{"CallSid": {"CA1"}})
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("invalid signature rejected", func(t *testing.T) {
		router := newRouter(&stubValidator{valid: false}, true)
		req := httptest.NewRequest(http.MethodPost, "/api/conversation",
			strings.NewReader(url.Values{"CallSid": {"CA1"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Twilio-Signature", "bogus")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("valid signature passes with public url", func(t *testing.T) {
		validator := &stubValidator{valid: true}
		router := newRouter(validator, true)
		req := httptest.NewRequest(http.MethodPost, "/api/conversation",
			strings.NewReader(url.Values{"CallSid": {"CA1"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Twilio-Signature", "good")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		if validator.url != "https://example.com/api/conversation" {
			t.Errorf("validated url = %q", validator.url)
		}
	})
}

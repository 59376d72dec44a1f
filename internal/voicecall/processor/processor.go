// Package processor drives the appointment booking conversation: one method
// per Twilio webhook, each returning the TwiML for the next turn of the call.
package processor

import (
	"context"
	"errors"
	"strconv"
	"time"

	"medicare-call-server/internal/assistant"
	"medicare-call-server/internal/callsession"
	"medicare-call-server/internal/events"
	"medicare-call-server/internal/observability"
	"medicare-call-server/internal/store"
)

//go:generate mockgen -source=processor.go -destination=mock_processor_test.go -package=processor

var (
	ErrPhoneRequired = errors.New("phone number is required")
	ErrRateLimited   = errors.New("call rate limit exceeded")
)

// A slot is taken once this many appointments share the same hospital, date
// and time.
const maxAppointmentsPerSlot = 3

// Transcriptions below this confidence are treated as not heard.
const minSpeechConfidence = 0.3

// Datastore is the persistence surface the call flow needs.
type Datastore interface {
	GetHospitalByID(ctx context.Context, id int) (store.Hospital, error)
	GetPatientByPhone(ctx context.Context, phone string) (store.PatientProfile, error)
	CountAppointmentsAt(ctx context.Context, hospitalID int, date time.Time, timeOfDay string) (int, error)
	CreateAppointment(ctx context.Context, params store.CreateAppointmentParams) (int64, error)
	CreateCallLog(ctx context.Context, callSID, phone, status string) error
	UpdateCallLogStatus(ctx context.Context, callSID, status string) error
	SetCallLogAppointment(ctx context.Context, callSID string, appointmentID int64) error
}

// Assistant is the language model surface the call flow needs.
type Assistant interface {
	ExtractAppointmentData(ctx context.Context, userInput string, history []callsession.Message) callsession.Extracted
	ConfirmationMessage(ctx context.Context, draft callsession.Draft, hospitalName string) string
	AnalyzeConfirmation(ctx context.Context, userInput string) assistant.Intent
}

// Telephony places calls and sends SMS.
type Telephony interface {
	StartCall(ctx context.Context, to, webhookURL, statusCallbackURL string) (string, error)
	SendSMS(ctx context.Context, to, body string) (string, error)
}

// Limiter throttles outbound calls per phone number.
type Limiter interface {
	Allow(ctx context.Context, phone string) (bool, error)
}

// Publisher fans call lifecycle events out to live observers.
type Publisher interface {
	Publish(ev events.CallEvent)
}

type Processor struct {
	sessions  callsession.Store
	db        Datastore
	assistant Assistant
	telephony Telephony
	limiter   Limiter
	events    Publisher
	publicURL string
	logger    *observability.Logger
}

func NewProcessor(
	sessions callsession.Store,
	db Datastore,
	asst Assistant,
	telephony Telephony,
	limiter Limiter,
	bus Publisher,
	publicURL string,
	logger *observability.Logger,
) *Processor {
	return &Processor{
		sessions:  sessions,
		db:        db,
		assistant: asst,
		telephony: telephony,
		limiter:   limiter,
		events:    bus,
		publicURL: publicURL,
		logger:    logger,
	}
}

// Webhook paths Twilio posts back to. Absolute URLs are required for Twilio
// to reach the service, so the public base URL is prefixed when configured.
const (
	welcomePath      = "/api/welcome"
	conversationPath = "/api/conversation"
	confirmPath      = "/api/confirm_appointment"
	callStatusPath   = "/api/call_status"
)

func (p *Processor) webhookURL(path string) string {
	if p.publicURL != "" {
		return p.publicURL + path
	}
	return path
}

// TurnInput carries the webhook form fields a conversation turn consumes.
type TurnInput struct {
	CallSID      string
	SpeechResult string
	Confidence   float64
	To           string
	From         string
}

// normalizeSpeech decides whether a transcription is usable. When it is not,
// the second return value holds the re-prompt to speak instead of processing
// the turn.
func normalizeSpeech(speech string, confidence float64) (string, string) {
	if speech == "" {
		return "", "I couldn't hear what you said. Please try speaking again clearly."
	}
	if confidence < minSpeechConfidence {
		return "", "I heard you, but wasn't very confident. Could you please speak more clearly and try again?"
	}
	return speech, ""
}

func formatMissingFields(missing []string) string {
	human := make([]string, 0, len(missing))
	for _, field := range missing {
		switch field {
		case "patient":
			human = append(human, "full name")
		case "hospital_id":
			human = append(human, "hospital ID")
		case "symptoms":
			human = append(human, "symptoms")
		case "date":
			human = append(human, "appointment date")
		case "time":
			human = append(human, "appointment time")
		}
	}
	if len(human) == 1 {
		return human[0]
	}
	joined := ""
	for i, h := range human[:len(human)-1] {
		if i > 0 {
			joined += ", "
		}
		joined += h
	}
	return joined + " and " + human[len(human)-1]
}

// followUpPrompt returns the scripted question for the missing fields. Single
// missing fields get a precise "say it like this" prompt because free-form
// answers transcribe poorly.
func followUpPrompt(missing []string) string {
	if len(missing) == 1 {
		switch missing[0] {
		case "patient":
			return "I still need your full name. Please clearly say: My name is followed by your full name."
		case "hospital_id":
			return "I need the hospital ID number. Please clearly say: Hospital ID followed by a number between 1 and 10."
		case "symptoms":
			return "I need to know why you're booking this appointment. Please clearly say: My symptoms are, followed by your health concern."
		case "date":
			return "I need the date for your appointment. Please clearly say: The date is, followed by a date like 2026-06-15."
		case "time":
			return "I need the time for your appointment. Please clearly say: The time is, followed by a time like 10:00 AM."
		}
	}
	return "I still need your " + formatMissingFields(missing) + ". Please provide this information."
}

func hospitalIDText(id *int) string {
	if id == nil {
		return ""
	}
	return strconv.Itoa(*id)
}

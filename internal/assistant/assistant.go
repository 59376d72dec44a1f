// Package assistant wraps the language model behind the call flow: pulling
// appointment fields out of caller speech, phrasing the confirmation readback,
// and classifying the caller's yes/no/cancel reply.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"medicare-call-server/internal/callsession"
	"medicare-call-server/internal/clients/groq"
	"medicare-call-server/internal/observability"
)

// LLMClient is the completion surface the assistant depends on.
type LLMClient interface {
	Complete(ctx context.Context, messages []groq.Message) (string, error)
}

// Intent classifies the caller's reply to the confirmation readback.
type Intent string

const (
	IntentConfirm Intent = "confirm"
	IntentCorrect Intent = "correct"
	IntentCancel  Intent = "cancel"
	IntentUnclear Intent = "unclear"
)

type Service struct {
	llm    LLMClient
	logger *observability.Logger
}

func NewService(llm LLMClient, logger *observability.Logger) *Service {
	return &Service{llm: llm, logger: logger}
}

// extractionPayload mirrors the JSON shape the extraction prompt requests.
// hospitalId stays raw because models return it as a number, a quoted number,
// or free text.
type extractionPayload struct {
	Patient    *string         `json:"patient"`
	Symptoms   *string         `json:"symptoms"`
	Date       *string         `json:"date"`
	Time       *string         `json:"time"`
	HospitalID json.RawMessage `json:"hospitalId"`
}

// ExtractAppointmentData asks the model for appointment fields present in the
// conversation so far. The model is called twice with the same prompt and the
// second response fills any field the first left null, which cuts down on
// sporadic misses. Failures degrade to an empty result so the call flow can
// fall back to re-prompting.
func (s *Service) ExtractAppointmentData(ctx context.Context, userInput string, history []callsession.Message) callsession.Extracted {
	var transcript strings.Builder
	for _, msg := range history {
		fmt.Fprintf(&transcript, "%s: %s\n", msg.Role, msg.Content)
	}

	combined := fmt.Sprintf(
		"Conversation history:\n%s\nCurrent input: %s\n\nExtract the appointment information from the above conversation.",
		transcript.String(), userInput,
	)

	messages := []groq.Message{
		{Role: groq.RoleSystem, Content: extractionSystemPrompt},
		{Role: groq.RoleUser, Content: combined},
	}

	first, err1 := s.llm.Complete(ctx, messages)
	second, err2 := s.llm.Complete(ctx, messages)
	if err1 != nil && err2 != nil {
		s.logger.Error(ctx, "appointment extraction failed on both attempts", err1)
		return callsession.Extracted{}
	}
	if err1 != nil {
		first, second = second, ""
	}

	payload, ok := parseExtraction(first)
	if !ok {
		s.logger.Warn(observability.WithFields(ctx, observability.Field{Key: "response", Value: first}),
			"extraction response was not JSON, salvaging fields")
		return salvageExtraction(first)
	}

	if second != "" {
		if confirm, ok := parseExtraction(second); ok {
			fillMissing(&payload, confirm)
		}
	}

	return toExtracted(payload)
}

// parseExtraction decodes a model reply, tolerating prose or code fences
// around the JSON object.
func parseExtraction(response string) (extractionPayload, bool) {
	var payload extractionPayload
	body := response
	if start := strings.Index(body, "{"); start >= 0 {
		if end := strings.LastIndex(body, "}"); end > start {
			body = body[start : end+1]
		}
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return extractionPayload{}, false
	}
	return payload, true
}

func fillMissing(dst *extractionPayload, src extractionPayload) {
	if strOrEmpty(dst.Patient) == "" && strOrEmpty(src.Patient) != "" {
		dst.Patient = src.Patient
	}
	if strOrEmpty(dst.Symptoms) == "" && strOrEmpty(src.Symptoms) != "" {
		dst.Symptoms = src.Symptoms
	}
	if strOrEmpty(dst.Date) == "" && strOrEmpty(src.Date) != "" {
		dst.Date = src.Date
	}
	if strOrEmpty(dst.Time) == "" && strOrEmpty(src.Time) != "" {
		dst.Time = src.Time
	}
	if coerceHospitalID(dst.HospitalID) == nil && coerceHospitalID(src.HospitalID) != nil {
		dst.HospitalID = src.HospitalID
	}
}

func toExtracted(payload extractionPayload) callsession.Extracted {
	return callsession.Extracted{
		Patient:    strOrEmpty(payload.Patient),
		Symptoms:   strOrEmpty(payload.Symptoms),
		Date:       strOrEmpty(payload.Date),
		Time:       strOrEmpty(payload.Time),
		HospitalID: coerceHospitalID(payload.HospitalID),
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

var digitsPattern = regexp.MustCompile(`\d+`)

// coerceHospitalID accepts a JSON number, a numeric string, or text with an
// embedded number.
func coerceHospitalID(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var asInt int
	if err := json.Unmarshal(raw, &asInt); err == nil {
		return &asInt
	}

	var asFloat float64
	if err := json.Unmarshal(raw, &asFloat); err == nil {
		id := int(asFloat)
		return &id
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if digits := digitsPattern.FindString(asString); digits != "" {
			if id, err := strconv.Atoi(digits); err == nil {
				return &id
			}
		}
	}

	return nil
}

var (
	salvagePatientPattern  = regexp.MustCompile(`patient["\s:]+([^",\n]+)`)
	salvageHospitalPattern = regexp.MustCompile(`hospital[_\s]*id["\s:]+(\d+)`)
)

// salvageExtraction mines a non-JSON reply for the two fields models most
// often mention in prose.
func salvageExtraction(response string) callsession.Extracted {
	var extracted callsession.Extracted
	if match := salvagePatientPattern.FindStringSubmatch(response); match != nil {
		extracted.Patient = strings.TrimSpace(match[1])
	}
	if match := salvageHospitalPattern.FindStringSubmatch(strings.ToLower(response)); match != nil {
		if id, err := strconv.Atoi(match[1]); err == nil {
			extracted.HospitalID = &id
		}
	}
	return extracted
}

// ConfirmationMessage phrases the spoken readback of the booked details. On
// model failure it falls back to a fixed template so the call never stalls.
func (s *Service) ConfirmationMessage(ctx context.Context, draft callsession.Draft, hospitalName string) string {
	details, err := json.Marshal(struct {
		callsession.Draft
		HospitalName string `json:"hospital_name"`
	}{Draft: draft, HospitalName: hospitalName})
	if err == nil {
		messages := []groq.Message{
			{Role: groq.RoleSystem, Content: confirmationSystemPrompt},
			{Role: groq.RoleUser, Content: fmt.Sprintf(
				"I need to generate a confirmation message for a patient booking an appointment. Here are the appointment details: %s.", details)},
		}
		if response, err := s.llm.Complete(ctx, messages); err == nil && strings.TrimSpace(response) != "" {
			return response
		}
		s.logger.Warn(ctx, "confirmation message generation failed, using fallback")
	}

	return fmt.Sprintf(
		"I'd like to confirm your appointment for %s at %s on %s at %s for %s. Is this correct?",
		draft.Patient, hospitalName, draft.Date, draft.Time, draft.Symptoms,
	)
}

// AnalyzeConfirmation classifies the caller's reply to the readback. Anything
// the model cannot classify comes back as IntentUnclear so the caller just
// gets asked again.
func (s *Service) AnalyzeConfirmation(ctx context.Context, userInput string) Intent {
	messages := []groq.Message{
		{Role: groq.RoleSystem, Content: analysisSystemPrompt},
		{Role: groq.RoleUser, Content: fmt.Sprintf("Analyze this response to an appointment confirmation: '%s'", userInput)},
	}

	response, err := s.llm.Complete(ctx, messages)
	if err != nil {
		s.logger.Error(ctx, "confirmation analysis failed", err)
		return IntentUnclear
	}

	var analysis struct {
		ResponseType string `json:"response_type"`
	}
	body := response
	if start := strings.Index(body, "{"); start >= 0 {
		if end := strings.LastIndex(body, "}"); end > start {
			body = body[start : end+1]
		}
	}
	if err := json.Unmarshal([]byte(body), &analysis); err != nil {
		s.logger.Warn(observability.WithFields(ctx, observability.Field{Key: "response", Value: response}),
			"confirmation analysis was not JSON")
		return IntentUnclear
	}

	switch Intent(analysis.ResponseType) {
	case IntentConfirm, IntentCorrect, IntentCancel:
		return Intent(analysis.ResponseType)
	default:
		return IntentUnclear
	}
}

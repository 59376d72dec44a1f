package twilio

import (
	"fmt"

	"github.com/twilio/twilio-go/twiml"
)

// Speech gather settings tuned for phone calls: generous timeout, enhanced
// recognition with the phone_call model.
const (
	gatherTimeout  = "10"
	gatherLanguage = "en-US"
)

const welcomeGreeting = "Hello! This is Medicare's appointment booking system. " +
	"I need to collect some specific information to book your appointment."

const welcomePrompt = "Please clearly state your full name, hospital ID, symptoms, " +
	"appointment date, and appointment time. For example, say: My name is John Smith, " +
	"hospital ID 1, symptoms are headache, date 2026-06-15, time 10:00 AM."

const noInputGoodbye = "I didn't hear anything. Please call back when you're ready to book an appointment."

// speechGather builds a speech Gather that posts the transcription to
// actionURL, with the prompt spoken inside the gather so callers can barge in.
func speechGather(actionURL, prompt string) *twiml.VoiceGather {
	return &twiml.VoiceGather{
		Input:         "speech",
		Action:        actionURL,
		Method:        "POST",
		Timeout:       gatherTimeout,
		SpeechTimeout: "auto",
		Language:      gatherLanguage,
		Enhanced:      "true",
		SpeechModel:   "phone_call",
		InnerElements: []twiml.Element{
			&twiml.VoiceSay{Message: prompt},
		},
	}
}

// WelcomeResponse builds the TwiML for the initial call greeting. Callers
// with a known medical profile are greeted by name.
func WelcomeResponse(actionURL, callerName string) (string, error) {
	greeting := welcomeGreeting
	if callerName != "" {
		greeting = fmt.Sprintf("Hello %s! This is Medicare's appointment booking system. "+
			"I need to collect some specific information to book your appointment.", callerName)
	}

	elements := []twiml.Element{
		&twiml.VoiceSay{Message: greeting},
		speechGather(actionURL, welcomePrompt),
		&twiml.VoiceSay{Message: noInputGoodbye},
		&twiml.VoiceHangup{},
	}

	doc, err := twiml.Voice(elements)
	if err != nil {
		return "", fmt.Errorf("failed to build welcome TwiML: %w", err)
	}
	return doc, nil
}

// GatherResponse speaks text and gathers the caller's spoken reply, posting
// it to actionURL.
func GatherResponse(text, actionURL string) (string, error) {
	elements := []twiml.Element{
		speechGather(actionURL, text),
		&twiml.VoiceSay{Message: "I didn't hear anything. Please call back when you're ready."},
		&twiml.VoiceHangup{},
	}

	doc, err := twiml.Voice(elements)
	if err != nil {
		return "", fmt.Errorf("failed to build gather TwiML: %w", err)
	}
	return doc, nil
}

// SayResponse speaks text and hangs up without gathering a reply.
func SayResponse(text string) (string, error) {
	doc, err := twiml.Voice([]twiml.Element{
		&twiml.VoiceSay{Message: text},
		&twiml.VoiceHangup{},
	})
	if err != nil {
		return "", fmt.Errorf("failed to build say TwiML: %w", err)
	}
	return doc, nil
}

package processor

import (
	"context"
	"errors"
	"fmt"

	"medicare-call-server/internal/callsession"
	twilioclient "medicare-call-server/internal/clients/twilio"
	"medicare-call-server/internal/events"
	"medicare-call-server/internal/observability"
	"medicare-call-server/internal/store"
	"medicare-call-server/internal/voicecall/extract"
)

// Welcome handles the webhook Twilio hits when a call is answered. It greets
// the caller and opens the first speech gather.
func (p *Processor) Welcome(ctx context.Context, callSID, phone string) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "call_sid", Value: callSID})
	p.logger.Info(ctx, "call answered")

	// Callers with a medical profile on file are greeted by name and skip
	// re-stating it.
	callerName := ""
	if profile, err := p.db.GetPatientByPhone(ctx, phone); err == nil {
		callerName = profile.Name
	} else if !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to look up caller profile", err)
	}

	if _, err := p.sessions.Get(ctx, callSID); errors.Is(err, callsession.ErrNotFound) {
		session := &callsession.Session{Draft: callsession.Draft{Phone: phone, Patient: callerName}}
		if err := p.sessions.Save(ctx, callSID, session); err != nil {
			p.logger.Error(ctx, "failed to create call session", err)
		}
	}

	if err := p.db.CreateCallLog(ctx, callSID, phone, "answered"); err != nil {
		p.logger.Error(ctx, "failed to record answered call", err)
	}

	p.events.Publish(events.CallEvent{Type: events.CallAnswered, CallSID: callSID, Phone: phone})

	return twilioclient.WelcomeResponse(p.webhookURL(conversationPath), callerName)
}

// ConversationTurn processes one gathered utterance: mine it for appointment
// fields, then either ask for what is still missing or read the completed
// booking back for confirmation.
func (p *Processor) ConversationTurn(ctx context.Context, input TurnInput) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "call_sid", Value: input.CallSID})

	speech, reprompt := normalizeSpeech(input.SpeechResult, input.Confidence)
	if reprompt != "" {
		p.logger.Warn(ctx, "speech not usable, re-prompting")
		return twilioclient.GatherResponse(reprompt, p.webhookURL(conversationPath))
	}

	session, err := p.sessions.Get(ctx, input.CallSID)
	if errors.Is(err, callsession.ErrNotFound) {
		session = &callsession.Session{}
	} else if err != nil {
		p.logger.Error(ctx, "failed to load call session", err)
		session = &callsession.Session{}
	}

	// The To number is the patient: on outbound calls From is this service's
	// own Twilio number.
	if session.Draft.Phone == "" {
		session.Draft.Phone = input.To
	}

	session.AddUserMessage(speech)

	extract.Apply(&session.Draft, speech)
	extracted := p.assistant.ExtractAppointmentData(ctx, speech, session.History)
	session.Draft.MergeExtracted(extracted)

	p.events.Publish(events.CallEvent{
		Type:    events.CallTurn,
		CallSID: input.CallSID,
		Phone:   session.Draft.Phone,
		Detail:  speech,
	})

	missing := session.Draft.MissingFields()
	if len(missing) > 0 {
		followUp := followUpPrompt(missing)
		session.AddAssistantMessage(followUp)
		if err := p.sessions.Save(ctx, input.CallSID, session); err != nil {
			p.logger.Error(ctx, "failed to save call session", err)
		}
		return twilioclient.GatherResponse(followUp, p.webhookURL(conversationPath))
	}

	return p.moveToConfirmation(ctx, input.CallSID, session)
}

// moveToConfirmation validates the completed draft against the database and,
// when everything checks out, reads the booking back to the caller.
func (p *Processor) moveToConfirmation(ctx context.Context, callSID string, session *callsession.Session) (string, error) {
	hospital, err := p.db.GetHospitalByID(ctx, *session.Draft.HospitalID)
	if errors.Is(err, store.ErrNotFound) {
		text := fmt.Sprintf(
			"I'm sorry, the hospital with ID %s doesn't exist in our system. Please say a different hospital ID between 1 and 10.",
			hospitalIDText(session.Draft.HospitalID),
		)
		session.Draft.HospitalID = nil
		session.AddAssistantMessage(text)
		if err := p.sessions.Save(ctx, callSID, session); err != nil {
			p.logger.Error(ctx, "failed to save call session", err)
		}
		return twilioclient.GatherResponse(text, p.webhookURL(conversationPath))
	}
	if err != nil {
		p.logger.Error(ctx, "hospital lookup failed", err)
		return twilioclient.GatherResponse(
			"I'm sorry, I didn't understand that. Could you please try again?",
			p.webhookURL(conversationPath),
		)
	}

	date, err := store.ParseDate(session.Draft.Date)
	if err != nil {
		text := "I couldn't make out the appointment date. Please clearly say: The date is, followed by a date like 2026-06-15."
		session.Draft.Date = ""
		session.AddAssistantMessage(text)
		if err := p.sessions.Save(ctx, callSID, session); err != nil {
			p.logger.Error(ctx, "failed to save call session", err)
		}
		return twilioclient.GatherResponse(text, p.webhookURL(conversationPath))
	}

	count, err := p.db.CountAppointmentsAt(ctx, hospital.ID, date, session.Draft.Time)
	if err != nil {
		p.logger.Error(ctx, "availability check failed", err)
		return twilioclient.GatherResponse(
			"I'm sorry, I didn't understand that. Could you please try again?",
			p.webhookURL(conversationPath),
		)
	}
	if count >= maxAppointmentsPerSlot {
		text := fmt.Sprintf(
			"I'm sorry, but the time slot at %s on %s is fully booked. Please suggest a different time.",
			session.Draft.Time, session.Draft.Date,
		)
		session.Draft.Time = ""
		session.AddAssistantMessage(text)
		if err := p.sessions.Save(ctx, callSID, session); err != nil {
			p.logger.Error(ctx, "failed to save call session", err)
		}
		return twilioclient.GatherResponse(text, p.webhookURL(conversationPath))
	}

	confirmation := p.assistant.ConfirmationMessage(ctx, session.Draft, hospital.Name)
	session.Confirming = true
	session.AddAssistantMessage(confirmation)
	if err := p.sessions.Save(ctx, callSID, session); err != nil {
		p.logger.Error(ctx, "failed to save call session", err)
	}

	return twilioclient.GatherResponse(confirmation, p.webhookURL(confirmPath))
}

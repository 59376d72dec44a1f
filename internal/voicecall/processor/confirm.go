package processor

import (
	"context"
	"errors"
	"fmt"

	"medicare-call-server/internal/assistant"
	"medicare-call-server/internal/callsession"
	twilioclient "medicare-call-server/internal/clients/twilio"
	"medicare-call-server/internal/events"
	"medicare-call-server/internal/observability"
	"medicare-call-server/internal/store"
)

const bookingFailedText = "I'm sorry, there was a problem creating your appointment. " +
	"Please try again later or call our office directly."

// ConfirmTurn handles the caller's reply to the confirmation readback.
func (p *Processor) ConfirmTurn(ctx context.Context, input TurnInput) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "call_sid", Value: input.CallSID})

	session, err := p.sessions.Get(ctx, input.CallSID)
	if err != nil {
		if !errors.Is(err, callsession.ErrNotFound) {
			p.logger.Error(ctx, "failed to load call session", err)
		}
		return twilioclient.GatherResponse(
			"I'm sorry, we seem to have lost your appointment information. Let's start over. What appointment would you like to book?",
			p.webhookURL(conversationPath),
		)
	}

	speech, reprompt := normalizeSpeech(input.SpeechResult, input.Confidence)
	if reprompt != "" {
		p.logger.Warn(ctx, "speech not usable, re-prompting")
		return twilioclient.GatherResponse(reprompt, p.webhookURL(confirmPath))
	}

	// Make sure the SMS goes to the patient, not to this service's own
	// number reported as the caller on outbound legs.
	if session.Draft.Phone == "" || session.Draft.Phone == input.From {
		session.Draft.Phone = input.To
	}

	session.AddUserMessage(speech)

	switch p.assistant.AnalyzeConfirmation(ctx, speech) {
	case assistant.IntentConfirm:
		return p.bookAppointment(ctx, input.CallSID, session)

	case assistant.IntentCorrect:
		session.Confirming = false
		if err := p.sessions.Save(ctx, input.CallSID, session); err != nil {
			p.logger.Error(ctx, "failed to save call session", err)
		}
		return twilioclient.GatherResponse(
			"I understand you want to make changes. What would you like to update about your appointment?",
			p.webhookURL(conversationPath),
		)

	case assistant.IntentCancel:
		if err := p.sessions.Delete(ctx, input.CallSID); err != nil {
			p.logger.Error(ctx, "failed to delete call session", err)
		}
		p.events.Publish(events.CallEvent{Type: events.CallEnded, CallSID: input.CallSID, Detail: "canceled by caller"})
		return twilioclient.SayResponse(
			"I understand you want to cancel. Your appointment has not been booked. Thank you for calling Medicare.",
		)

	default:
		return twilioclient.GatherResponse(
			"I'm sorry, I didn't understand your response. Please say 'yes' to confirm the appointment, 'no' to make changes, or 'cancel' to cancel.",
			p.webhookURL(confirmPath),
		)
	}
}

// bookAppointment writes the confirmed appointment, texts the details to the
// patient, and closes out the call.
func (p *Processor) bookAppointment(ctx context.Context, callSID string, session *callsession.Session) (string, error) {
	draft := session.Draft

	date, err := store.ParseDate(draft.Date)
	if err != nil {
		p.logger.Error(ctx, "confirmed draft has unparseable date", err)
		return twilioclient.SayResponse(bookingFailedText)
	}

	appointmentID, err := p.db.CreateAppointment(ctx, store.CreateAppointmentParams{
		Patient:    draft.Patient,
		Phone:      draft.Phone,
		Symptoms:   draft.Symptoms,
		Latitude:   draft.Latitude,
		Longitude:  draft.Longitude,
		Date:       date,
		Time:       draft.Time,
		HospitalID: *draft.HospitalID,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create appointment", err)
		return twilioclient.SayResponse(bookingFailedText)
	}

	hospitalName := ""
	if hospital, err := p.db.GetHospitalByID(ctx, *draft.HospitalID); err == nil {
		hospitalName = hospital.Name
	} else {
		p.logger.Error(ctx, "hospital lookup for SMS failed", err)
	}

	sms := fmt.Sprintf(
		"Medicare Appointment Confirmation\nPatient: %s\nDate: %s\nTime: %s\nHospital: %s\nSymptoms: %s\nAppointment ID: %d",
		draft.Patient, draft.Date, draft.Time, hospitalName, draft.Symptoms, appointmentID,
	)
	if _, err := p.telephony.SendSMS(ctx, draft.Phone, sms); err != nil {
		p.logger.Error(ctx, "failed to send confirmation SMS", err)
	}

	if err := p.db.SetCallLogAppointment(ctx, callSID, appointmentID); err != nil && !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to link appointment to call log", err)
	}

	p.events.Publish(events.CallEvent{
		Type:    events.CallConfirmed,
		CallSID: callSID,
		Phone:   draft.Phone,
		Detail:  fmt.Sprintf("appointment %d", appointmentID),
	})

	if err := p.sessions.Delete(ctx, callSID); err != nil {
		p.logger.Error(ctx, "failed to delete call session", err)
	}

	return twilioclient.SayResponse(fmt.Sprintf(
		"Great! Your appointment has been confirmed. Your appointment ID is %d. "+
			"I've also sent you a text message with the details. Thank you for using Medicare's appointment booking service!",
		appointmentID,
	))
}

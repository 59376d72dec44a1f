package processor

import (
	"context"
	"errors"
	"strings"

	"medicare-call-server/internal/callsession"
	"medicare-call-server/internal/events"
	"medicare-call-server/internal/observability"
	"medicare-call-server/internal/store"
)

// InitiateCall places an outbound booking call to the patient and returns the
// call SID.
func (p *Processor) InitiateCall(ctx context.Context, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", ErrPhoneRequired
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	allowed, err := p.limiter.Allow(ctx, phone)
	if err != nil {
		p.logger.Error(ctx, "rate limit check failed", err)
	} else if !allowed {
		return "", ErrRateLimited
	}

	callSID, err := p.telephony.StartCall(ctx,
		phone,
		p.webhookURL(welcomePath),
		p.webhookURL(callStatusPath),
	)
	if err != nil {
		return "", err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "call_sid", Value: callSID})

	session := &callsession.Session{Draft: callsession.Draft{Phone: phone}}
	if err := p.sessions.Save(ctx, callSID, session); err != nil {
		p.logger.Error(ctx, "failed to create call session", err)
	}

	if err := p.db.CreateCallLog(ctx, callSID, phone, "initiated"); err != nil {
		p.logger.Error(ctx, "failed to record initiated call", err)
	}

	p.events.Publish(events.CallEvent{Type: events.CallInitiated, CallSID: callSID, Phone: phone})

	return callSID, nil
}

// Statuses after which Twilio will send no further webhooks for the call.
var terminalCallStatuses = map[string]bool{
	"completed": true,
	"failed":    true,
	"busy":      true,
	"no-answer": true,
	"canceled":  true,
}

// HandleCallStatus records a status callback and tears down session state
// once the call reaches a terminal status.
func (p *Processor) HandleCallStatus(ctx context.Context, callSID, status string) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "call_sid", Value: callSID},
		observability.Field{Key: "call_status", Value: status},
	)
	p.logger.Info(ctx, "call status update")

	if err := p.db.UpdateCallLogStatus(ctx, callSID, status); err != nil && !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to update call log status", err)
	}

	if terminalCallStatuses[status] {
		if err := p.sessions.Delete(ctx, callSID); err != nil {
			p.logger.Error(ctx, "failed to delete call session", err)
		}
		p.events.Publish(events.CallEvent{Type: events.CallEnded, CallSID: callSID, Detail: status})
	}

	return nil
}

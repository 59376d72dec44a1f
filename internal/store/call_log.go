package store

import (
	"context"
	"fmt"
	"time"
)

const sqlCreateCallLog = `
INSERT INTO call_logs (call_sid, phone, status)
VALUES ($1, $2, $3)
ON CONFLICT (call_sid) DO UPDATE SET status = EXCLUDED.status, updated_at = now()`

// CreateCallLog records a new call, or refreshes its status if the row
// already exists (Twilio may retry webhooks).
func (s *Store) CreateCallLog(ctx context.Context, callSID, phone, status string) error {
	_, err := s.db.ExecContext(ctx, sqlCreateCallLog, callSID, phone, status)
	if err != nil {
		s.logger.Error(ctx, "failed to create call log", err)
		return fmt.Errorf("failed to create call log: %w", err)
	}
	return nil
}

const sqlUpdateCallLogStatus = `
UPDATE call_logs SET status = $1, updated_at = now() WHERE call_sid = $2`

func (s *Store) UpdateCallLogStatus(ctx context.Context, callSID, status string) error {
	result, err := s.db.ExecContext(ctx, sqlUpdateCallLogStatus, status, callSID)
	if err != nil {
		s.logger.Error(ctx, "failed to update call log status", err)
		return fmt.Errorf("failed to update call log status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

const sqlSetCallLogAppointment = `
UPDATE call_logs SET appointment_id = $1, updated_at = now() WHERE call_sid = $2`

// SetCallLogAppointment links a call to the appointment it produced.
func (s *Store) SetCallLogAppointment(ctx context.Context, callSID string, appointmentID int64) error {
	_, err := s.db.ExecContext(ctx, sqlSetCallLogAppointment, appointmentID, callSID)
	if err != nil {
		s.logger.Error(ctx, "failed to link call log to appointment", err)
		return fmt.Errorf("failed to link call log to appointment: %w", err)
	}
	return nil
}

const sqlCountCallsSince = `
SELECT COUNT(*) FROM call_logs WHERE created_at >= $1`

// CountCallsSince reports recent call volume for the status endpoint.
func (s *Store) CountCallsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, sqlCountCallsSince, since)
	if err != nil {
		s.logger.Error(ctx, "failed to count recent calls", err)
		return 0, fmt.Errorf("failed to count recent calls: %w", err)
	}
	return count, nil
}

const sqlCountCallsToPhoneSince = `
SELECT COUNT(*) FROM call_logs WHERE phone = $1 AND created_at >= $2`

// CountCallsToPhoneSince reports how many calls were placed to a number in a
// window. Backs rate limiting when Redis is unavailable.
func (s *Store) CountCallsToPhoneSince(ctx context.Context, phone string, since time.Time) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, sqlCountCallsToPhoneSince, phone, since)
	if err != nil {
		s.logger.Error(ctx, "failed to count calls to phone", err)
		return 0, fmt.Errorf("failed to count calls to phone: %w", err)
	}
	return count, nil
}

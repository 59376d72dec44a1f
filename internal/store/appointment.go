package store

import (
	"context"
	"fmt"
	"time"
)

const sqlCountAppointmentsAt = `
SELECT COUNT(*) FROM "Appointment"
WHERE "hospitalId" = $1 AND "date" = $2 AND "time" = $3`

// CountAppointmentsAt returns how many appointments already occupy the slot.
func (s *Store) CountAppointmentsAt(ctx context.Context, hospitalID int, date time.Time, timeOfDay string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, sqlCountAppointmentsAt, hospitalID, date, timeOfDay)
	if err != nil {
		s.logger.Error(ctx, "failed to count appointments", err)
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

const sqlCreateAppointment = `
INSERT INTO "Appointment" (
    "patient", "phone", "symptoms", "latitude", "longitude", "date", "time",
    "hospitalId", "alert"
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, '{}'
) RETURNING id`

// CreateAppointment inserts a confirmed appointment and returns its id.
func (s *Store) CreateAppointment(ctx context.Context, params CreateAppointmentParams) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, sqlCreateAppointment,
		params.Patient,
		params.Phone,
		params.Symptoms,
		params.Latitude,
		params.Longitude,
		params.Date,
		params.Time,
		params.HospitalID,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to create appointment", err)
		return 0, fmt.Errorf("failed to create appointment: %w", err)
	}
	return id, nil
}

const sqlListAppointmentsBetween = `
SELECT "id", "patient", "phone", "symptoms", "date", "time", "hospitalId"
FROM "Appointment"
WHERE "date" >= $1 AND "date" <= $2
ORDER BY "date", "time"`

// ListAppointmentsBetween returns appointments whose date falls in the
// inclusive range. Used by the reminder scheduler.
func (s *Store) ListAppointmentsBetween(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	var appointments []Appointment
	err := s.db.SelectContext(ctx, &appointments, sqlListAppointmentsBetween, from, to)
	if err != nil {
		s.logger.Error(ctx, "failed to list appointments", err)
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

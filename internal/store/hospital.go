package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const sqlGetHospitalByID = `
SELECT "id", "name" FROM "Hospital" WHERE "id" = $1`

func (s *Store) GetHospitalByID(ctx context.Context, id int) (Hospital, error) {
	var hospital Hospital
	err := s.db.GetContext(ctx, &hospital, sqlGetHospitalByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Hospital{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get hospital by ID", err)
		return Hospital{}, fmt.Errorf("failed to get hospital by ID: %w", err)
	}
	return hospital, nil
}

const sqlGetPatientByPhone = `
SELECT mp."userId", u."name" FROM "MedicalProfile" mp
JOIN "User" u ON mp."userId" = u."id"
WHERE mp."phone" = $1`

// GetPatientByPhone recognizes a caller with an existing medical profile.
func (s *Store) GetPatientByPhone(ctx context.Context, phone string) (PatientProfile, error) {
	var profile PatientProfile
	err := s.db.GetContext(ctx, &profile, sqlGetPatientByPhone, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PatientProfile{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get patient by phone", err)
		return PatientProfile{}, fmt.Errorf("failed to get patient by phone: %w", err)
	}
	return profile, nil
}

package store

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// The Hospital, Doctor, Appointment and MedicalProfile tables are managed by
// the Medicare web application's Prisma schema, which is why their names and
// columns are quoted camelCase. This service only reads them and inserts
// appointments. The call_logs table is owned by this service.

// Hospital is a bookable hospital
type Hospital struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

// Appointment is a booked appointment row
type Appointment struct {
	ID         int64     `db:"id"`
	Patient    string    `db:"patient"`
	Phone      string    `db:"phone"`
	Symptoms   string    `db:"symptoms"`
	Date       time.Time `db:"date"`
	Time       string    `db:"time"`
	HospitalID int       `db:"hospitalId"`
}

// PatientProfile identifies a known patient looked up by phone number
type PatientProfile struct {
	UserID string `db:"userId"`
	Name   string `db:"name"`
}

// CallLog records the lifecycle of a single phone call
type CallLog struct {
	CallSID       string     `db:"call_sid"`
	Phone         string     `db:"phone"`
	Status        string     `db:"status"`
	AppointmentID *int64     `db:"appointment_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// CreateAppointmentParams carries the fields collected during a call.
// Latitude, longitude and alerts are not collected by phone and default to
// zero values.
type CreateAppointmentParams struct {
	Patient    string
	Phone      string
	Symptoms   string
	Latitude   float64
	Longitude  float64
	Date       time.Time
	Time       string
	HospitalID int
}

var ordinalSuffix = regexp.MustCompile(`(?i)(\d)(st|nd|rd|th)\b`)

var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
}

// ParseDate turns the date formats patients actually say ("2026-06-15",
// "06/15/2026", "june 15th, 2026") into a time.Time.
func ParseDate(s string) (time.Time, error) {
	cleaned := ordinalSuffix.ReplaceAllString(strings.TrimSpace(s), "$1")
	cleaned = titleWords(cleaned)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// titleWords capitalizes each word so spoken month names match time.Parse
// layouts.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

package callsession

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no session exists for a call SID
var ErrNotFound = errors.New("call session not found")

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message is one turn of the phone conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Draft accumulates appointment fields across conversation turns
type Draft struct {
	Patient    string  `json:"patient,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Symptoms   string  `json:"symptoms,omitempty"`
	Date       string  `json:"date,omitempty"`
	Time       string  `json:"time,omitempty"`
	HospitalID *int    `json:"hospital_id,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// Extracted holds appointment fields mined from a single utterance
type Extracted struct {
	Patient    string
	Symptoms   string
	Date       string
	Time       string
	HospitalID *int
}

// Session is the conversational state of one phone call
type Session struct {
	History    []Message `json:"history"`
	Draft      Draft     `json:"draft"`
	Confirming bool      `json:"confirming"`
}

// AddUserMessage appends the caller's utterance to the history
func (s *Session) AddUserMessage(content string) {
	s.History = append(s.History, Message{Role: MessageRoleUser, Content: content})
}

// AddAssistantMessage appends the system's spoken reply to the history
func (s *Session) AddAssistantMessage(content string) {
	s.History = append(s.History, Message{Role: MessageRoleAssistant, Content: content})
}

// Required appointment fields, in the order callers are asked for them
var requiredFields = []string{"patient", "symptoms", "date", "time", "hospital_id"}

// MissingFields lists the required fields the draft does not have yet
func (d *Draft) MissingFields() []string {
	var missing []string
	for _, field := range requiredFields {
		switch field {
		case "patient":
			if d.Patient == "" {
				missing = append(missing, field)
			}
		case "symptoms":
			if d.Symptoms == "" {
				missing = append(missing, field)
			}
		case "date":
			if d.Date == "" {
				missing = append(missing, field)
			}
		case "time":
			if d.Time == "" {
				missing = append(missing, field)
			}
		case "hospital_id":
			if d.HospitalID == nil {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

// Complete reports whether every required field is present
func (d *Draft) Complete() bool {
	return len(d.MissingFields()) == 0
}

// isNullish filters the literal "null" strings models sometimes emit
func isNullish(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "null", "none":
		return true
	}
	return false
}

// MergeExtracted folds model-extracted fields into the draft. Values the
// caller already provided win, with one exception: a longer patient name
// replaces a shorter one, since partial names get captured early in the call.
func (d *Draft) MergeExtracted(e Extracted) {
	if !isNullish(e.Patient) {
		if d.Patient == "" || len(e.Patient) > len(d.Patient) {
			d.Patient = e.Patient
		}
	}
	if !isNullish(e.Symptoms) && d.Symptoms == "" {
		d.Symptoms = e.Symptoms
	}
	if !isNullish(e.Date) && d.Date == "" {
		d.Date = e.Date
	}
	if !isNullish(e.Time) && d.Time == "" {
		d.Time = e.Time
	}
	if e.HospitalID != nil && d.HospitalID == nil {
		d.HospitalID = e.HospitalID
	}
}

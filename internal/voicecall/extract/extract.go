// Package extract mines appointment fields out of transcribed caller speech
// with deterministic patterns, before any model gets involved. Phone-call
// transcriptions are noisy, so each field has several phrasings, and anything
// the patterns miss is left for the LLM extractor.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"medicare-call-server/internal/callsession"
)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:my name is|this is|i am|i'm|name is) ([a-z\s]+)`),
	regexp.MustCompile(`([a-z\s]+) is my name`),
	regexp.MustCompile(`patient(?:'s)? name (?:is )?([a-z\s]+)`),
}

// Filler words that ride along with spoken names
var nameStopwords = map[string]bool{
	"calling": true, "here": true, "speaking": true, "and": true,
	"the": true, "to": true, "for": true, "with": true,
	"hospital": true, "id": true, "symptoms": true, "date": true, "time": true,
}

var nameExcludeKeywords = []string{"hospital", "symptom", "date", "time", "appointment", "book"}

var hospitalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`hospital (?:id|number|#)?\s*(?:is)?\s*(\d+)`),
	regexp.MustCompile(`hospital(?:id)? (\d+)`),
	regexp.MustCompile(`(?:id|number) (\d+)`),
	regexp.MustCompile(`hospital (\d+)`),
	regexp.MustCompile(`the number (\d+)`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`date (?:is |of )?(20\d\d-\d{1,2}-\d{1,2})`),
	regexp.MustCompile(`(20\d\d-\d{1,2}-\d{1,2})`),
	regexp.MustCompile(`date (?:is |of )?(\d{1,2}[/-]\d{1,2}[/-]20\d\d)`),
	regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]20\d\d)`),
	regexp.MustCompile(`date (?:is |for |on )?([a-z]+ \d{1,2}(?:st|nd|rd|th)?,? 20\d\d)`),
	regexp.MustCompile(`on ([a-z]+ \d{1,2}(?:st|nd|rd|th)?,? 20\d\d)`),
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`time (?:is |at )?(\d{1,2}(?::\d{2})?\s*(?:am|pm))`),
	regexp.MustCompile(`(\d{1,2}(?::\d{2})?\s*(?:am|pm))`),
	regexp.MustCompile(`at (\d{1,2}(?::\d{2})?\s*(?:am|pm))`),
	regexp.MustCompile(`time (?:is |at )?(\d{1,2}(?::\d{2})?\s*(?:in the morning|in the afternoon|in the evening))`),
	regexp.MustCompile(`(\d{1,2}) o'?clock`),
}

var symptomMarkers = []string{"symptom", "problem", "issue", "reason", "suffering", "pain", "appointment for"}

var symptomPatterns = []*regexp.Regexp{
	regexp.MustCompile(`symptoms? (?:is|are) (.+?)(?:\.|$|date|time|hospital)`),
	regexp.MustCompile(`problems? (?:is|are) (.+?)(?:\.|$|date|time|hospital)`),
	regexp.MustCompile(`suffering from (.+?)(?:\.|$|date|time|hospital)`),
	regexp.MustCompile(`reason (?:is|for) (.+?)(?:\.|$|date|time|hospital)`),
	regexp.MustCompile(`issue (?:is|with) (.+?)(?:\.|$|date|time|hospital)`),
	regexp.MustCompile(`appointment for (.+?)(?:\.|$|date|time|hospital)`),
	regexp.MustCompile(`i have (?:a|an) (.+?)(?:\.|$|date|time|hospital)`),
}

// Name extracts the patient name from an utterance that introduces one.
func Name(speech string) (string, bool) {
	lower := strings.ToLower(speech)

	for _, pattern := range namePatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		var kept []string
		for _, word := range strings.Fields(match[1]) {
			if !nameStopwords[word] {
				kept = append(kept, word)
			}
		}
		if len(kept) > 0 {
			return titleCase(strings.Join(kept, " ")), true
		}
	}

	return "", false
}

// BareName treats a short all-alphabetic reply as a name by itself. Callers
// answering "what is your name" often say just the name, so this only runs
// when no name is known yet.
func BareName(speech string) (string, bool) {
	lower := strings.ToLower(speech)
	words := strings.Fields(lower)
	if len(words) == 0 || len(words) > 4 || !allAlpha(words) {
		return "", false
	}
	for _, keyword := range nameExcludeKeywords {
		if strings.Contains(lower, keyword) {
			return "", false
		}
	}
	return titleCase(strings.TrimSpace(speech)), true
}

// HospitalID extracts a numeric hospital identifier from the utterance.
func HospitalID(speech string) (int, bool) {
	lower := strings.ToLower(speech)
	for _, pattern := range hospitalPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		id, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		return id, true
	}
	return 0, false
}

// Date extracts a spoken appointment date from the utterance.
func Date(speech string) (string, bool) {
	lower := strings.ToLower(speech)
	for _, pattern := range datePatterns {
		if match := pattern.FindStringSubmatch(lower); match != nil {
			return strings.TrimSpace(match[1]), true
		}
	}
	return "", false
}

// Time extracts a spoken appointment time from the utterance.
func Time(speech string) (string, bool) {
	lower := strings.ToLower(speech)
	for _, pattern := range timePatterns {
		if match := pattern.FindStringSubmatch(lower); match != nil {
			return strings.TrimSpace(match[1]), true
		}
	}
	return "", false
}

// Symptoms extracts the reason for the appointment, but only when the
// utterance contains a symptom marker so ordinary sentences are not mined.
func Symptoms(speech string) (string, bool) {
	lower := strings.ToLower(speech)

	marked := false
	for _, marker := range symptomMarkers {
		if strings.Contains(lower, marker) {
			marked = true
			break
		}
	}
	if !marked {
		return "", false
	}

	for _, pattern := range symptomPatterns {
		if match := pattern.FindStringSubmatch(lower); match != nil {
			return strings.TrimSpace(match[1]), true
		}
	}
	return "", false
}

// Apply runs every direct capture against the utterance and writes hits into
// the draft. Direct captures overwrite earlier values: a caller repeating a
// field is correcting it.
func Apply(d *callsession.Draft, speech string) {
	if name, ok := Name(speech); ok {
		d.Patient = name
	} else if d.Patient == "" {
		if name, ok := BareName(speech); ok {
			d.Patient = name
		}
	}
	if id, ok := HospitalID(speech); ok {
		d.HospitalID = &id
	}
	if date, ok := Date(speech); ok {
		d.Date = date
	}
	if t, ok := Time(speech); ok {
		d.Time = t
	}
	if symptoms, ok := Symptoms(speech); ok {
		d.Symptoms = symptoms
	}

	if d.Symptoms == "" {
		if residual, ok := residualSymptoms(d, speech); ok {
			d.Symptoms = residual
		}
	}
}

var commonPhrases = []string{
	"my name is", "this is", "i am", "i'm", "name is", "hospital id",
	"date is", "time is", "i need", "i want", "to book", "an appointment",
	"appointment for",
}

// residualSymptoms treats whatever is left of the utterance, after removing
// every known field and stock phrase, as the symptoms. Only kicks in once
// all other fields are present, mirroring how callers tack the complaint onto
// the end of an otherwise complete sentence.
func residualSymptoms(d *callsession.Draft, speech string) (string, bool) {
	if d.Patient == "" || d.HospitalID == nil || d.Date == "" || d.Time == "" {
		return "", false
	}

	remaining := strings.ToLower(speech)
	removals := append([]string{}, commonPhrases...)
	removals = append(removals,
		strings.ToLower(d.Patient),
		"hospital "+strconv.Itoa(*d.HospitalID),
		"hospital id "+strconv.Itoa(*d.HospitalID),
		strings.ToLower(d.Date),
		strings.ToLower(d.Time),
	)
	for _, phrase := range removals {
		remaining = strings.ReplaceAll(remaining, phrase, " ")
	}

	remaining = strings.Join(strings.Fields(remaining), " ")
	remaining = strings.Trim(remaining, " ,.")
	if len(remaining) <= 3 {
		return "", false
	}
	return capitalize(remaining), true
}

func allAlpha(words []string) bool {
	for _, w := range words {
		for _, r := range w {
			if r < 'a' || r > 'z' {
				return false
			}
		}
	}
	return true
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

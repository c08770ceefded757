package models

import "encoding/json"

// ParseAnswerMap decodes a stored checklist answer blob into a question to
// answer map. Legacy rows hold NULL, a double-encoded JSON string, or
// occasionally garbage; all of those degrade to an empty map rather than an
// error so one bad row never breaks a listing or an export.
func ParseAnswerMap(raw []byte) map[string]string {
	if len(raw) == 0 {
		return map[string]string{}
	}

	var m map[string]string
	if err := json.Unmarshal(raw, &m); err == nil && m != nil {
		return m
	}

	// Some rows were written as a JSON string containing JSON.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &m); err == nil && m != nil {
			return m
		}
	}

	return map[string]string{}
}

// ValidAnswer reports whether v is an accepted checklist answer.
func ValidAnswer(v string) bool {
	switch v {
	case "Yes", "No", "N/A":
		return true
	}
	return false
}

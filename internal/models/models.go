package models

import "time"

// ScanSession represents one scanning run over a physical inventory
type ScanSession struct {
	ID        string    `json:"session_id"`
	Items     []Record  `json:"items"`
	CreatedAt time.Time `json:"started_at"`
}

// ScanCount returns the number of captured records
func (s *ScanSession) ScanCount() int {
	return len(s.Items)
}

// Record is the validated result of one successful capture.
// Records are immutable once appended to a session.
type Record struct {
	Brand      string    `json:"brand"`
	Capacity   string    `json:"capacity"`
	Generation string    `json:"generation"`
	Speed      string    `json:"speed"`
	Timestamp  time.Time `json:"timestamp"`
}

// RawRecord holds the fields as parsed from the model response,
// before validation
type RawRecord struct {
	Brand      string `json:"brand"`
	Capacity   string `json:"capacity"`
	Generation string `json:"generation"`
	Speed      string `json:"speed"`
	Confidence string `json:"confidence,omitempty"`
}

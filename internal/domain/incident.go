package domain

import (
	"time"
)

type IncidentStatus string

const (
	StatusOpen          IncidentStatus = "Open"
	StatusInvestigating IncidentStatus = "Investigating"
	StatusResolved      IncidentStatus = "Resolved"
)

// Valid reports whether s is one of the three triage states. Anything else
// is rejected by the status-update path.
func (s IncidentStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInvestigating, StatusResolved:
		return true
	}
	return false
}

// Conventional severity labels. Neither the store nor intake enforces the
// set; dashboards filter on the exact strings.
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// Incident is a single field-reported event. JSON serialization lives in
// the handler presenters, which deliberately expose a subset of fields.
type Incident struct {
	ID               int64
	Type             string
	Severity         string
	Description      string
	Latitude         float64
	Longitude        float64
	LocationAccuracy *float64
	PhotoFilename    *string
	ReporterName     string
	ReporterUnit     string
	ReporterContact  string
	ReportedAt       time.Time
	Status           IncidentStatus
}

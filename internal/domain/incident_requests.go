package domain

import "io"

// SubmitReportRequest carries the raw form values of a report submission.
// Coordinates stay strings here; the intake service owns parsing so that a
// malformed value fails the whole submission, not just the binding.
type SubmitReportRequest struct {
	Type            string
	Severity        string
	Description     string
	Latitude        string
	Longitude       string
	Accuracy        string
	ReporterName    string
	ReporterUnit    string
	ReporterContact string
}

// Coordinates is the parsed, range-checked form of the required location
// fields.
type Coordinates struct {
	Latitude  float64 `validate:"lat"`
	Longitude float64 `validate:"lng"`
}

// PhotoUpload is an optional attachment accompanying a submission. File is
// the still-open multipart part; the intake service drains it.
type PhotoUpload struct {
	Filename string
	File     io.Reader
}

type UpdateStatusRequest struct {
	Status IncidentStatus `json:"status"`
}

// IncidentFilter restricts list/count operations. Empty fields mean no
// restriction; set fields are exact-match and AND-combined.
type IncidentFilter struct {
	Severity string
	Type     string
	Status   string
}

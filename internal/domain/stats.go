package domain

// IncidentStats is the dashboard summary snapshot. The four counts are
// computed independently and are not mutually atomic.
type IncidentStats struct {
	Total    int64 `json:"total"`
	Critical int64 `json:"critical"`
	High     int64 `json:"high"`
	Open     int64 `json:"open"`
}

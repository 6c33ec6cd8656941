package model

// Break is a worker's single break on a calendar day.
// Dates are YYYY-MM-DD and times HH:MM:SS in venue local time.
type Break struct {
	ID         string `db:"id"          json:"id"`
	WorkerID   string `db:"worker_id"   json:"worker_id"`
	WorkerName string `db:"worker_name" json:"worker_name,omitempty"`
	BreakDate  string `db:"break_date"  json:"break_date"`
	StartTime  string `db:"start_time"  json:"start_time"`
	EndTime    string `db:"end_time"    json:"end_time"`
}

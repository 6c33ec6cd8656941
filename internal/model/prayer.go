package model

// PrayerStatus records whether a worker has prayed a given prayer on a date.
type PrayerStatus struct {
	WorkerID   string `db:"worker_id"   json:"worker_id"`
	PrayerDate string `db:"prayer_date" json:"prayer_date"`
	PrayerName string `db:"prayer_name" json:"prayer_name"`
	HasPrayed  bool   `db:"has_prayed"  json:"has_prayed"`
}

// OnShift is a worker currently on shift, as exposed to clients.
type OnShift struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

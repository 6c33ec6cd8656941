package packets

type CreateWorkerRequest struct {
	Name    string `json:"name"    binding:"required"`
	ICalURL string `json:"icalUrl" binding:"required"`
}

// SaveBreakRequest times accept HH:MM or HH:MM:SS.
type SaveBreakRequest struct {
	WorkerID  string `json:"workerId"  binding:"required"`
	BreakDate string `json:"breakDate" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime"   binding:"required"`
}

// SetPrayerStatusRequest uses a pointer so an explicit false is not
// mistaken for a missing field.
type SetPrayerStatusRequest struct {
	WorkerID  string `json:"workerId"  binding:"required"`
	PrayerKey string `json:"prayerKey" binding:"required"`
	HasPrayed *bool  `json:"hasPrayed" binding:"required"`
}

package packets

import (
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/model"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/prayer"
)

type OKResponse struct {
	OK bool `json:"ok"`
}

type WorkersResponse struct {
	Workers []model.Worker `json:"workers"`
}

type WorkerResponse struct {
	Worker model.Worker `json:"worker"`
}

type BreakRef struct {
	ID         string `json:"id"`
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name"`
}

type BreakResponse struct {
	model.Break
	OverlapsWith []BreakRef `json:"overlaps_with"`
}

type BreaksResponse struct {
	Breaks []BreakResponse `json:"breaks"`
}

type SavedBreakResponse struct {
	Break model.Break `json:"break"`
}

type CurrentPrayer struct {
	Key         prayer.Key `json:"key"`
	Label       string     `json:"label"`
	Time        string     `json:"time"`
	WindowStart string     `json:"windowStart"`
	WindowEnd   string     `json:"windowEnd"`
}

type PrayerWorker struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	HasPrayed bool   `json:"hasPrayed"`
}

type PrayerResponse struct {
	At            string         `json:"at"`
	Date          string         `json:"date"`
	Times         prayer.Times   `json:"times"`
	CurrentPrayer CurrentPrayer  `json:"currentPrayer"`
	OnShift       []PrayerWorker `json:"onShift"`
}

type WhosOnResponse struct {
	OnShift []model.OnShift `json:"onShift"`
	At      string          `json:"at"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Package endpoints holds the rota HTTP handlers, grouped into api.Modules.
package endpoints

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/interval"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/model"
)

const msgInvalidJSON = "Invalid JSON"

// Venue carries the venue timezone and the clock handlers read "now" from.
type Venue struct {
	Location *time.Location
	Clock    func() time.Time
}

// Now returns the current time in the venue timezone.
func (v Venue) Now() time.Time {
	now := time.Now
	if v.Clock != nil {
		now = v.Clock
	}
	loc := v.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// Roster answers who is on shift.
type Roster interface {
	OnShiftAt(ctx context.Context, at time.Time) ([]model.Worker, error)
	OnShiftDuring(ctx context.Context, window interval.Interval) ([]model.Worker, error)
}

// bindJSON decodes the body into dst. Malformed JSON and failed binding
// rules are reported with different messages.
func bindJSON(ctx *gin.Context, dst any, missing string) *api.APIError {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return api.BadRequest(missing)
		}
		return api.BadRequest(msgInvalidJSON)
	}
	return nil
}

func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// instantLayout renders response timestamps in UTC with milliseconds,
// e.g. "2025-06-10T09:00:00.000Z".
const instantLayout = "2006-01-02T15:04:05.000Z07:00"

func formatInstant(t time.Time) string {
	return t.UTC().Format(instantLayout)
}

func validDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

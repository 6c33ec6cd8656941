package roster

import (
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/interval"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/model"
)

// BreakOverlaps maps each break id to the other breaks whose [start, end)
// overlaps it. Breaks are compared by time of day only, so callers pass the
// breaks of a single date. Breaks with unreadable times overlap nothing.
func BreakOverlaps(breaks []model.Break) map[string][]model.Break {
	byID := make(map[string]model.Break, len(breaks))
	keyed := make([]interval.Keyed, 0, len(breaks))
	for _, b := range breaks {
		byID[b.ID] = b
		start, err := interval.ParseClock(b.StartTime)
		if err != nil {
			continue
		}
		end, err := interval.ParseClock(b.EndTime)
		if err != nil {
			continue
		}
		keyed = append(keyed, interval.Keyed{Key: b.ID, Range: interval.MinuteRange{Start: start, End: end}})
	}

	pairs := interval.OverlapPairs(keyed)
	out := make(map[string][]model.Break, len(breaks))
	for _, b := range breaks {
		others := make([]model.Break, 0, len(pairs[b.ID]))
		for _, id := range pairs[b.ID] {
			others = append(others, byID[id])
		}
		out[b.ID] = others
	}
	return out
}

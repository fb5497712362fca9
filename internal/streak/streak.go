// Package streak maintains the consecutive-day usage counter.
package streak

import (
	"math"
	"sync"
	"tatico/internal/providers"
	"tatico/internal/services"
	"time"
)

// maxGapDays is the largest whole-day gap that still extends the streak.
// Beyond it the counter resets to 1.
const maxGapDays = 2

// Engine evaluates the streak transition. Evaluate runs at most once per
// process lifetime; repeated calls are no-ops.
type Engine struct {
	once    sync.Once
	service services.TrackerServiceInterface
	logger  providers.Logger
}

func NewEngine(service services.TrackerServiceInterface, logger providers.Logger) *Engine {
	return &Engine{service: service, logger: logger}
}

// Evaluate applies the calendar-day transition for the given instant:
// same day is idempotent, a gap of one or two days increments the counter,
// anything longer resets it to 1. The last-open stamp always moves to now.
//
// Day gaps are whole calendar days in local time throughout; a 25-hour
// absence that crosses exactly one midnight counts as one day.
func (e *Engine) Evaluate(now time.Time) {
	e.once.Do(func() {
		lastOpen := e.service.LastOpen()
		gap := calendarDaysBetween(lastOpen, now)

		switch {
		case gap == 0:
			// Already opened today.
			return
		case gap > maxGapDays:
			e.service.SetStreak(1, now)
			e.logger.Infof(providers.TypeApp, "Streak reset after %d day gap", gap)
		default:
			count := e.service.StreakCount() + 1
			e.service.SetStreak(count, now)
			e.logger.Infof(providers.TypeApp, "Streak extended to %d days", count)
		}
	})
}

// calendarDaysBetween counts midnights crossed between the two instants in
// local time. Rounding absorbs DST-shortened or -lengthened days. Negative
// spans (clock skew) count as zero.
func calendarDaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	days := int(math.Round(toDay.Sub(fromDay).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

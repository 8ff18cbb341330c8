package questgen

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
)

// DefaultResetSchedule refreshes quests every day at 04:00
const DefaultResetSchedule = "0 4 * * *"

// ParseSchedule parses a standard five-field cron spec
func ParseSchedule(spec string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid quest reset schedule").
			WithMeta("schedule", spec)
	}
	return sched, nil
}

// NeedsRefresh reports whether a new quest set is due: quests were never
// generated, or the first reset after the last generation has already passed.
func NeedsRefresh(spec string, lastGeneration, now time.Time) (bool, error) {
	if lastGeneration.IsZero() {
		return true, nil
	}
	sched, err := ParseSchedule(spec)
	if err != nil {
		return false, err
	}
	return !sched.Next(lastGeneration).After(now), nil
}

package progression

import (
	"sort"
	"time"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/clock"
)

// civilDay is a calendar date detached from any time zone
type civilDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time, loc *time.Location) civilDay {
	y, m, d := t.In(loc).Date()
	return civilDay{y, m, d}
}

func (d civilDay) time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d civilDay) prev() civilDay {
	return dayOf(d.time().AddDate(0, 0, -1), time.UTC)
}

// RecordTrainingDay marks the calendar day of date as trained and adds exp to
// its total. Existing records for that day are merged, never replaced.
func (s *Store) RecordTrainingDay(date time.Time, exp int) error {
	return s.mutate(func(snap *fitness.Snapshot) error {
		s.upsertTrainingDay(snap, date, nil, max(exp, 0))
		recomputeDerived(snap, s.loc)
		return nil
	})
}

// upsertTrainingDay merges one completion into the record for date's local day
func (s *Store) upsertTrainingDay(snap *fitness.Snapshot, date time.Time, quest *fitness.CompletedTrainingQuest, exp int) {
	key := dayOf(date, s.loc)
	for i := range snap.TrainingHistory {
		day := &snap.TrainingHistory[i]
		if dayOf(day.Date, s.loc) != key {
			continue
		}
		day.Completed = true
		day.ExpGained += exp
		if quest != nil {
			day.QuestsCompleted++
			day.Quests = append(day.Quests, *quest)
		}
		return
	}

	day := fitness.TrainingDay{
		Date:      clock.StartOfDay(date, s.loc),
		Completed: true,
		ExpGained: exp,
		Quests:    []fitness.CompletedTrainingQuest{},
	}
	if quest != nil {
		day.QuestsCompleted = 1
		day.Quests = append(day.Quests, *quest)
	}
	snap.TrainingHistory = append(snap.TrainingHistory, day)
	sort.SliceStable(snap.TrainingHistory, func(i, j int) bool {
		return snap.TrainingHistory[i].Date.Before(snap.TrainingHistory[j].Date)
	})
}

// recomputeDerived rebuilds totalWorkouts and streak from training history
func recomputeDerived(snap *fitness.Snapshot, loc *time.Location) {
	if snap.User == nil {
		return
	}
	total, streak := DerivedMetrics(snap.TrainingHistory, loc)
	snap.User.TotalWorkouts = total
	snap.User.Streak = streak
}

// DerivedMetrics returns the number of distinct completed days and the length
// of the consecutive-day run ending at the most recent completed day
func DerivedMetrics(history []fitness.TrainingDay, loc *time.Location) (totalWorkouts, streak int) {
	if loc == nil {
		loc = time.Local
	}

	days := make(map[civilDay]bool)
	var latest civilDay
	var latestTime time.Time
	for _, day := range history {
		if !day.Completed {
			continue
		}
		key := dayOf(day.Date, loc)
		days[key] = true
		if t := key.time(); latestTime.IsZero() || t.After(latestTime) {
			latest, latestTime = key, t
		}
	}
	if len(days) == 0 {
		return 0, 0
	}

	for d := latest; days[d]; d = d.prev() {
		streak++
	}
	return len(days), streak
}

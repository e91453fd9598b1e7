package booking

import (
	"sort"
	"time"

	"advisordesk/models"
	"advisordesk/services/availability"
)

// maxOffered caps how many candidate slots a single turn presents.
const maxOffered = 2

// OfferSlots selects up to two candidate slots for a time preference.
// It tries the requested day first, then adjacent days outward up to
// adjacentDayRange, and ranks each day's free slots by distance from the
// requested time, then by start time. The result is deterministic for a
// fixed availability snapshot. An empty result means no availability in
// the whole look-ahead window; the caller prompts for a different time.
func OfferSlots(pref models.TimePreference, now time.Time, source availability.Source, adjacentDayRange int) ([]models.CalendarSlot, error) {
	target := pref.Instant()

	for _, offset := range dayOffsets(adjacentDayRange) {
		day := pref.Day.AddDate(0, 0, offset)
		if day.AddDate(0, 0, 1).Before(now) {
			continue
		}
		window := models.SlotWindow{From: day, To: day.AddDate(0, 0, 1)}
		slots, err := source.Query(window)
		if err != nil {
			return nil, err
		}

		candidates := slots[:0:0]
		for _, s := range slots {
			if s.Start.After(now) {
				candidates = append(candidates, s)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			di := absDuration(candidates[i].Start.Sub(target))
			dj := absDuration(candidates[j].Start.Sub(target))
			if di != dj {
				return di < dj
			}
			return candidates[i].Start.Before(candidates[j].Start)
		})
		if len(candidates) > maxOffered {
			candidates = candidates[:maxOffered]
		}
		return candidates, nil
	}

	return nil, nil
}

// SlotStillFree re-queries the source for a previously offered slot.
// Used at confirmation time: another session may have taken it.
func SlotStillFree(slot models.CalendarSlot, source availability.Source) (bool, error) {
	window := models.SlotWindow{From: slot.Start, To: slot.Start.Add(time.Minute)}
	slots, err := source.Query(window)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s.ID == slot.ID && s.Status == models.SlotFree {
			return true, nil
		}
	}
	return false, nil
}

// dayOffsets yields 0, +1, -1, +2, -2, ... out to the configured range.
func dayOffsets(adjacentDayRange int) []int {
	offsets := []int{0}
	for d := 1; d <= adjacentDayRange; d++ {
		offsets = append(offsets, d, -d)
	}
	return offsets
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

package availability

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"advisordesk/models"
)

// StaticSource serves slots from a fixed in-memory dataset, the deployment's
// stand-in for a live calendar. Mark lets tests (and the confirmation
// re-check scenario) flip a slot to busy between queries.
type StaticSource struct {
	mu    sync.RWMutex
	slots []models.CalendarSlot
}

// NewStaticSource builds a source over the given slots.
func NewStaticSource(slots []models.CalendarSlot) *StaticSource {
	sorted := make([]models.CalendarSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })
	return &StaticSource{slots: sorted}
}

// Query returns the free slots inside [window.From, window.To), ordered by
// start time. The order is stable for a fixed dataset.
func (s *StaticSource) Query(window models.SlotWindow) ([]models.CalendarSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.CalendarSlot
	for _, slot := range s.slots {
		if slot.Status != models.SlotFree {
			continue
		}
		if slot.Start.Before(window.From) || !slot.Start.Before(window.To) {
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}

// Mark sets the status of the slot with the given ID.
func (s *StaticSource) Mark(id, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].ID == id {
			s.slots[i].Status = status
		}
	}
}

// calendarFile is the on-disk dataset shape: entries keyed by date, each
// listing bookable times in the given timezone.
type calendarFile struct {
	AvailableSlots []struct {
		Date     string   `json:"date"`
		Timezone string   `json:"timezone"`
		Times    []string `json:"times"`
		Busy     []string `json:"busy"`
	} `json:"available_slots"`
}

// LoadFromFile reads a static calendar dataset from a JSON file.
func LoadFromFile(path string, durationMin int) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar dataset: %w", err)
	}
	var file calendarFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse calendar dataset: %w", err)
	}

	var slots []models.CalendarSlot
	for _, entry := range file.AvailableSlots {
		tz := entry.Timezone
		if tz == "" {
			tz = "Asia/Kolkata"
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q in calendar dataset: %w", tz, err)
		}
		day, err := time.ParseInLocation("2006-01-02", entry.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q in calendar dataset: %w", entry.Date, err)
		}
		for _, t := range entry.Times {
			slot, err := buildSlot(day, t, durationMin, models.SlotFree)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot)
		}
		for _, t := range entry.Busy {
			slot, err := buildSlot(day, t, durationMin, models.SlotBusy)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot)
		}
	}
	return NewStaticSource(slots), nil
}

func buildSlot(day time.Time, clock string, durationMin int, status string) (models.CalendarSlot, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return models.CalendarSlot{}, fmt.Errorf("invalid time %q in calendar dataset: %w", clock, err)
	}
	start := day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	return models.CalendarSlot{
		ID:          start.Format("20060102-1504"),
		Start:       start,
		DurationMin: durationMin,
		Status:      status,
	}, nil
}

// GenerateWeekly builds the default advisor schedule: hourly slots,
// Tuesday through Saturday, 09:00 to 17:00, for the given number of
// days starting the day after from.
func GenerateWeekly(from time.Time, days, durationMin int) *StaticSource {
	loc := from.Location()
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	var slots []models.CalendarSlot
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d)
		if day.Weekday() == time.Sunday || day.Weekday() == time.Monday {
			continue
		}
		for hour := 9; hour < 17; hour++ {
			slotStart := day.Add(time.Duration(hour) * time.Hour)
			slots = append(slots, models.CalendarSlot{
				ID:          slotStart.Format("20060102-1504"),
				Start:       slotStart,
				DurationMin: durationMin,
				Status:      models.SlotFree,
			})
		}
	}
	return NewStaticSource(slots)
}

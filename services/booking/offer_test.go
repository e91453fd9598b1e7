package booking

import (
	"testing"
	"time"

	"advisordesk/models"
	"advisordesk/services/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func slotAt(day time.Time, hour int) models.CalendarSlot {
	start := day.Add(time.Duration(hour) * time.Hour)
	return models.CalendarSlot{
		ID:          start.Format("20060102-1504"),
		Start:       start,
		DurationMin: 30,
		Status:      models.SlotFree,
	}
}

func TestOfferSlots(t *testing.T) {
	now := time.Date(2026, time.February, 2, 9, 0, 0, 0, ist)
	day := time.Date(2026, time.February, 6, 0, 0, 0, 0, ist)
	pref := models.TimePreference{Day: day, Minutes: 10 * 60, HasTime: true}

	t.Run("ranks by proximity to the requested time", func(t *testing.T) {
		source := availability.NewStaticSource([]models.CalendarSlot{
			slotAt(day, 9), slotAt(day, 11), slotAt(day, 14), slotAt(day, 16),
		})

		slots, err := OfferSlots(pref, now, source, 2)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, 9, slots[0].Start.Hour())
		assert.Equal(t, 11, slots[1].Start.Hour())
	})

	t.Run("never offers more than two", func(t *testing.T) {
		source := availability.NewStaticSource([]models.CalendarSlot{
			slotAt(day, 9), slotAt(day, 10), slotAt(day, 11), slotAt(day, 12),
		})
		slots, err := OfferSlots(pref, now, source, 2)
		require.NoError(t, err)
		assert.Len(t, slots, 2)
	})

	t.Run("equidistant slots break ties toward the earlier start", func(t *testing.T) {
		source := availability.NewStaticSource([]models.CalendarSlot{
			slotAt(day, 9), slotAt(day, 11),
		})
		slots, err := OfferSlots(pref, now, source, 2)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, 9, slots[0].Start.Hour())
	})

	t.Run("falls over to an adjacent day when the requested day is full", func(t *testing.T) {
		nextDay := day.AddDate(0, 0, 1)
		source := availability.NewStaticSource([]models.CalendarSlot{
			slotAt(nextDay, 10), slotAt(nextDay, 15),
		})
		slots, err := OfferSlots(pref, now, source, 2)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, nextDay.Day(), slots[0].Start.Day())
	})

	t.Run("returns nothing when the whole range is empty", func(t *testing.T) {
		source := availability.NewStaticSource(nil)
		slots, err := OfferSlots(pref, now, source, 2)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("skips slots already in the past", func(t *testing.T) {
		todayPref := models.TimePreference{
			Day:     time.Date(2026, time.February, 2, 0, 0, 0, 0, ist),
			Minutes: 10 * 60,
			HasTime: true,
		}
		source := availability.NewStaticSource([]models.CalendarSlot{
			slotAt(todayPref.Day, 8), slotAt(todayPref.Day, 15),
		})
		slots, err := OfferSlots(todayPref, now, source, 0)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, 15, slots[0].Start.Hour())
	})

	t.Run("is deterministic for a fixed snapshot", func(t *testing.T) {
		source := availability.NewStaticSource([]models.CalendarSlot{
			slotAt(day, 9), slotAt(day, 11), slotAt(day, 14),
		})
		first, err := OfferSlots(pref, now, source, 2)
		require.NoError(t, err)
		second, err := OfferSlots(pref, now, source, 2)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestSlotStillFree(t *testing.T) {
	day := time.Date(2026, time.February, 6, 0, 0, 0, 0, ist)
	slot := slotAt(day, 10)
	source := availability.NewStaticSource([]models.CalendarSlot{slot})

	free, err := SlotStillFree(slot, source)
	require.NoError(t, err)
	assert.True(t, free)

	source.Mark(slot.ID, models.SlotBusy)
	free, err = SlotStillFree(slot, source)
	require.NoError(t, err)
	assert.False(t, free)
}

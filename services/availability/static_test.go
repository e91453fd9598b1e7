package availability

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"advisordesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func TestGenerateWeekly(t *testing.T) {
	// A Monday; generation starts the next day.
	from := time.Date(2026, time.February, 2, 9, 0, 0, 0, ist)
	source := GenerateWeekly(from, 7, 30)

	window := models.SlotWindow{
		From: time.Date(2026, time.February, 3, 0, 0, 0, 0, ist),
		To:   time.Date(2026, time.February, 10, 0, 0, 0, 0, ist),
	}
	slots, err := source.Query(window)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		wd := slot.Start.Weekday()
		assert.NotEqual(t, time.Sunday, wd, "no slots on Sunday")
		assert.NotEqual(t, time.Monday, wd, "no slots on Monday")
		assert.GreaterOrEqual(t, slot.Start.Hour(), 9)
		assert.Less(t, slot.Start.Hour(), 17)
		assert.Equal(t, 30, slot.DurationMin)
	}

	// Tuesday 3 Feb alone should carry the full working day.
	tuesday, err := source.Query(models.SlotWindow{
		From: time.Date(2026, time.February, 3, 0, 0, 0, 0, ist),
		To:   time.Date(2026, time.February, 4, 0, 0, 0, 0, ist),
	})
	require.NoError(t, err)
	assert.Len(t, tuesday, 8)
}

func TestLoadFromFile(t *testing.T) {
	data := `{
		"available_slots": [
			{
				"date": "2026-02-06",
				"timezone": "Asia/Kolkata",
				"times": ["10:00", "11:00"],
				"busy": ["14:00"]
			}
		]
	}`
	path := filepath.Join(t.TempDir(), "calendar.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	source, err := LoadFromFile(path, 30)
	require.NoError(t, err)

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	window := models.SlotWindow{
		From: time.Date(2026, time.February, 6, 0, 0, 0, 0, loc),
		To:   time.Date(2026, time.February, 7, 0, 0, 0, 0, loc),
	}

	// Only the free times come back from Query.
	slots, err := source.Query(window)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 10, slots[0].Start.Hour())
	assert.Equal(t, 11, slots[1].Start.Hour())
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"), 30)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
	_, err = LoadFromFile(bad, 30)
	assert.Error(t, err)
}

func TestMarkFlipsAvailability(t *testing.T) {
	day := time.Date(2026, time.February, 6, 0, 0, 0, 0, ist)
	slot := models.CalendarSlot{ID: "a", Start: day.Add(10 * time.Hour), DurationMin: 30, Status: models.SlotFree}
	source := NewStaticSource([]models.CalendarSlot{slot})
	window := models.SlotWindow{From: day, To: day.AddDate(0, 0, 1)}

	slots, err := source.Query(window)
	require.NoError(t, err)
	assert.Len(t, slots, 1)

	source.Mark("a", models.SlotBusy)
	slots, err = source.Query(window)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

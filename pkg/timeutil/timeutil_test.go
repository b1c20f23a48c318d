package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Berlin.
	ts := time.Date(2026, 8, 24, 23, 30, 0, 0, time.UTC)
	start := StartOfDay(ts, loc)

	assert.Equal(t, 2026, start.Year())
	assert.Equal(t, time.August, start.Month())
	assert.Equal(t, 25, start.Day())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, loc, start.Location())
}

func TestStartOfWeek_Monday(t *testing.T) {
	// 2026-08-27 is a Thursday.
	thursday := time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC)
	start := StartOfWeek(thursday, time.UTC)

	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, 24, start.Day())

	// A Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, start, StartOfWeek(sunday, time.UTC))

	// A Monday is its own week start.
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, StartOfWeek(monday, time.UTC))
}

func TestSameDayAndDayKey(t *testing.T) {
	a := time.Date(2026, 8, 24, 0, 15, 0, 0, time.UTC)
	b := time.Date(2026, 8, 24, 23, 45, 0, 0, time.UTC)
	c := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b, time.UTC))
	assert.False(t, SameDay(b, c, time.UTC))
	assert.Equal(t, "2026-08-24", DayKey(a, time.UTC))
	assert.Equal(t, "2026-08-25", DayKey(c, time.UTC))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 8, 24, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 8, 27, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysBetween(a, b, time.UTC))
	assert.Equal(t, -3, DaysBetween(b, a, time.UTC))
	assert.Equal(t, 0, DaysBetween(a, a, time.UTC))
}

func TestWeekWindow(t *testing.T) {
	monday := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	days := WeekWindow(monday, time.UTC)

	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), days[6])
	for i := 1; i < 7; i++ {
		assert.Equal(t, 1, DaysBetween(days[i-1], days[i], time.UTC))
	}
}

func TestParseTimeOfDay(t *testing.T) {
	fallback := TimeOfDay{Hour: 7}

	assert.Equal(t, TimeOfDay{Hour: 6, Minute: 30}, ParseTimeOfDay("06:30", fallback))
	assert.Equal(t, TimeOfDay{Hour: 23, Minute: 59}, ParseTimeOfDay("23:59", fallback))
	assert.Equal(t, fallback, ParseTimeOfDay("", fallback))
	assert.Equal(t, fallback, ParseTimeOfDay("25:00", fallback))
	assert.Equal(t, fallback, ParseTimeOfDay("07:61", fallback))
	assert.Equal(t, fallback, ParseTimeOfDay("garbage", fallback))
}

func TestTimeOfDayOn(t *testing.T) {
	day := time.Date(2026, 8, 24, 18, 45, 0, 0, time.UTC)
	anchored := TimeOfDay{Hour: 7, Minute: 15}.On(day, time.UTC)

	assert.Equal(t, time.Date(2026, 8, 24, 7, 15, 0, 0, time.UTC), anchored)
	assert.Equal(t, "07:15", TimeOfDay{Hour: 7, Minute: 15}.String())
	assert.Equal(t, 435, TimeOfDay{Hour: 7, Minute: 15}.Minutes())
}

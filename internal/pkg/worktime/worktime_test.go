package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	valid := map[string]TimeOfDay{
		"08:00":   {8, 0},
		"00:00":   {0, 0},
		"23:59":   {23, 59},
		" 16:30 ": {16, 30},
		"8:05":    {8, 5},
	}
	for in, want := range valid {
		got, err := ParseTimeOfDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "24:00", "12:60", "12-00", "noon", "123:00"} {
		_, err := ParseTimeOfDay(in)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, in)
	}
}

func TestTimeOfDay_StringAndOrder(t *testing.T) {
	a := TimeOfDay{Hour: 6, Minute: 5}
	b := TimeOfDay{Hour: 22, Minute: 0}
	assert.Equal(t, "06:05", a.String())
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.Equal(t, 365, a.Minutes())
}

func TestNewClock(t *testing.T) {
	cases := map[string]int{
		"":         0,
		"UTC":      0,
		"+07:00":   7 * 3600,
		"UTC+7":    7 * 3600,
		"-0330":    -(3*3600 + 30*60),
		"utc+5:45": 5*3600 + 45*60,
	}
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for in, want := range cases {
		c, err := NewClock(in)
		require.NoError(t, err, in)
		_, offset := ref.In(c.Location()).Zone()
		assert.Equal(t, want, offset, in)
	}

	_, err := NewClock("+15:00")
	assert.Error(t, err)
	_, err = NewClock("Mars/Olympus")
	assert.Error(t, err)
}

func TestClock_DateAndWeekday_UseConfiguredOffset(t *testing.T) {
	c := FixedClock(7)

	// 2025-06-01 18:30 UTC is Monday 2025-06-02 01:30 in UTC+7.
	instant := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), c.Date(instant))
	assert.Equal(t, time.Monday, c.Weekday(instant))
	assert.Equal(t, time.Sunday, instant.Weekday())
}

func TestClock_At(t *testing.T) {
	c := FixedClock(7)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	got := c.At(day, TimeOfDay{Hour: 8, Minute: 0})
	assert.Equal(t, time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Minggu", DayName(time.Sunday))
	assert.Equal(t, "Jumat", DayName(time.Friday))
	assert.Equal(t, "Sabtu", DayName(time.Saturday))
	assert.Equal(t, "", DayName(time.Weekday(9)))
}

package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	t.Run("a Monday maps to itself", func(t *testing.T) {
		assert.Equal(t, monday, WeekStart(monday))
	})

	t.Run("midweek days map back to Monday", func(t *testing.T) {
		wednesday := time.Date(2024, 6, 5, 16, 45, 12, 0, time.UTC)
		assert.Equal(t, monday, WeekStart(wednesday))
	})

	t.Run("Sunday belongs to the week that started six days earlier", func(t *testing.T) {
		sunday := time.Date(2024, 6, 9, 23, 59, 59, 0, time.UTC)
		assert.Equal(t, monday, WeekStart(sunday))
	})

	t.Run("result is always midnight UTC", func(t *testing.T) {
		warsaw, err := time.LoadLocation("Europe/Warsaw")
		if err != nil {
			t.Skip("tzdata unavailable")
		}
		local := time.Date(2024, 6, 4, 1, 30, 0, 0, warsaw)
		got := WeekStart(local)
		assert.Equal(t, time.UTC, got.Location())
		assert.Equal(t, monday, got)
	})
}

func TestDateOnly(t *testing.T) {
	stamped := time.Date(2024, 6, 5, 18, 22, 41, 123, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), DateOnly(stamped))
}

package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDaysRemaining(t *testing.T) {
	today := date("2024-06-10")

	assert.Equal(t, 0, DaysRemaining(date("2024-06-10"), today))
	assert.Equal(t, 3, DaysRemaining(date("2024-06-13"), today))
	assert.Equal(t, -1, DaysRemaining(date("2024-06-09"), today))
	assert.Equal(t, 21, DaysRemaining(date("2024-07-01"), today))
}

func TestDaysRemainingIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC)
	delivery := time.Date(2024, 6, 11, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysRemaining(delivery, today))
}

func TestDue(t *testing.T) {
	today := date("2024-06-10")

	cases := []struct {
		name     string
		delivery string
		want     bool
	}{
		{"due today", "2024-06-10", true},
		{"one day out", "2024-06-11", true},
		{"window edge", "2024-06-13", true},
		{"just past window", "2024-06-14", false},
		{"overdue", "2024-06-09", false},
		{"far future", "2024-12-24", false},
		{"long overdue", "2023-01-01", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Due(date(tc.delivery), today))
		})
	}
}

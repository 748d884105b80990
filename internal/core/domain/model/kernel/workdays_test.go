package kernel_test

import (
	"fmt"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestAddWorkdays(t *testing.T) {
	friday := date(2024, time.March, 1)
	saturday := date(2024, time.March, 2)
	sunday := date(2024, time.March, 3)
	monday := date(2024, time.March, 4)

	testCases := []struct {
		name     string
		start    time.Time
		workdays int
		expected time.Time
	}{
		{"monday plus one", monday, 1, date(2024, time.March, 5)},
		{"friday plus one skips weekend", friday, 1, monday},
		{"friday plus three", friday, 3, date(2024, time.March, 6)},
		{"friday plus five", friday, 5, date(2024, time.March, 8)},
		{"saturday plus one", saturday, 1, monday},
		{"sunday plus one", sunday, 1, monday},
		{"monday plus ten spans two weekends", monday, 10, date(2024, time.March, 18)},
		{"zero on workday", monday, 0, monday},
		{"zero on saturday returns saturday", saturday, 0, saturday},
		{"zero on sunday returns sunday", sunday, 0, sunday},
		{"negative is treated as zero", monday, -3, monday},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, kernel.AddWorkdays(tc.start, tc.workdays))
		})
	}
}

func TestAddWorkdays_DropsTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, date(2024, time.March, 4), kernel.AddWorkdays(start, 1))
}

func TestAddWorkdays_NeverReturnsWeekend(t *testing.T) {
	start := date(2024, time.January, 1)

	for offset := range 14 {
		for workdays := 1; workdays <= 25; workdays++ {
			s := start.AddDate(0, 0, offset)
			t.Run(fmt.Sprintf("%s+%d", s.Format(time.DateOnly), workdays), func(t *testing.T) {
				assert.True(t, kernel.IsWorkday(kernel.AddWorkdays(s, workdays)))
			})
		}
	}
}

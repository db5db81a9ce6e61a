package quote

import (
	"testing"
	"time"
)

func TestWeeksOf(t *testing.T) {
	tests := []struct {
		name          string
		now           time.Time
		thisWeekStart time.Time
	}{
		{
			name:          "Midweek",
			now:           time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC), // Wednesday
			thisWeekStart: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "Sunday belongs to its own week",
			now:           time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
			thisWeekStart: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "Saturday night",
			now:           time.Date(2025, 3, 15, 23, 59, 59, 0, time.UTC),
			thisWeekStart: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "Converted to UTC first",
			now:           time.Date(2025, 3, 8, 20, 0, 0, 0, time.FixedZone("EST", -5*3600)), // Sunday 01:00 UTC
			thisWeekStart: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "Across a year boundary",
			now:           time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC),
			thisWeekStart: time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weeks := WeeksOf(tt.now)
			if !weeks.ThisWeekStart.Equal(tt.thisWeekStart) {
				t.Errorf("ThisWeekStart = %s, expected %s", weeks.ThisWeekStart, tt.thisWeekStart)
			}
			if !weeks.ThisWeekEnd.Equal(tt.thisWeekStart.AddDate(0, 0, 7)) {
				t.Errorf("ThisWeekEnd = %s", weeks.ThisWeekEnd)
			}
			if !weeks.LastWeekStart.Equal(tt.thisWeekStart.AddDate(0, 0, -7)) {
				t.Errorf("LastWeekStart = %s", weeks.LastWeekStart)
			}
			if !weeks.LastWeekEnd.Equal(tt.thisWeekStart) {
				t.Errorf("LastWeekEnd = %s", weeks.LastWeekEnd)
			}
		})
	}
}

func TestNewDashboard(t *testing.T) {
	dash := NewDashboard(5, 8, 3, 1)
	expected := Dashboard{
		QuotesCreatedThisWeek: 5,
		QuotesCreatedLastWeek: 8,
		QuotesCreatedChange:   -3,
		PreApprovedThisWeek:   3,
		PreApprovedLastWeek:   1,
		PreApprovedChange:     2,
	}
	if dash != expected {
		t.Errorf("NewDashboard() = %+v, expected %+v", dash, expected)
	}
}

package quote

import (
	"time"

	"github.com/iwvelando/loan-portal/pkg/datetime"
)

// Dashboard compares this week's activity with last week's.
type Dashboard struct {
	QuotesCreatedThisWeek int `json:"quotesCreatedThisWeek"`
	QuotesCreatedLastWeek int `json:"quotesCreatedLastWeek"`
	QuotesCreatedChange   int `json:"quotesCreatedChange"`
	PreApprovedThisWeek   int `json:"preApprovedThisWeek"`
	PreApprovedLastWeek   int `json:"preApprovedLastWeek"`
	PreApprovedChange     int `json:"preApprovedChange"`
}

// Weeks holds the half-open [start, end) windows for the current and the
// previous week.
type Weeks struct {
	ThisWeekStart time.Time
	ThisWeekEnd   time.Time
	LastWeekStart time.Time
	LastWeekEnd   time.Time
}

// WeeksOf returns the week windows around now. Weeks start on Sunday at
// midnight UTC.
func WeeksOf(now time.Time) Weeks {
	start := datetime.StartOfWeek(now)
	return Weeks{
		ThisWeekStart: start,
		ThisWeekEnd:   start.AddDate(0, 0, 7),
		LastWeekStart: start.AddDate(0, 0, -7),
		LastWeekEnd:   start,
	}
}

// NewDashboard fills in the week-over-week changes.
func NewDashboard(createdThisWeek, createdLastWeek, approvedThisWeek, approvedLastWeek int) Dashboard {
	return Dashboard{
		QuotesCreatedThisWeek: createdThisWeek,
		QuotesCreatedLastWeek: createdLastWeek,
		QuotesCreatedChange:   createdThisWeek - createdLastWeek,
		PreApprovedThisWeek:   approvedThisWeek,
		PreApprovedLastWeek:   approvedLastWeek,
		PreApprovedChange:     approvedThisWeek - approvedLastWeek,
	}
}

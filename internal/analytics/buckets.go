package analytics

import (
	"fmt"
	"time"
)

// Range is a reporting window selector.
type Range string

const (
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

// ParseRange maps a query value onto a Range, defaulting to the weekly view.
func ParseRange(s string) Range {
	switch Range(s) {
	case RangeToday, RangeWeek, RangeMonth, RangeYear:
		return Range(s)
	}
	return RangeWeek
}

// WindowStart computes the current window's start for "now". The previous
// comparison window is the same duration immediately before it.
func (r Range) WindowStart(now time.Time) time.Time {
	switch r {
	case RangeToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case RangeMonth:
		return now.AddDate(0, -1, 0)
	case RangeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// Bucketer maps an order's creation time onto a fixed label set. Index
// returns -1 for times that belong to no bucket; such orders still count
// toward window totals.
type Bucketer interface {
	Labels() []string
	Index(t time.Time) int
}

// NewBucketer returns the bucketing strategy for a range: hour-of-day for
// today, day-of-week for week, week-of-month for month, month-of-year for
// year.
func NewBucketer(r Range) Bucketer {
	switch r {
	case RangeToday:
		return hourBucketer{}
	case RangeMonth:
		return weekOfMonthBucketer{}
	case RangeYear:
		return monthBucketer{}
	default:
		return weekdayBucketer{}
	}
}

// hourBucketer covers the service hours 10:00 through 17:00.
type hourBucketer struct{}

func (hourBucketer) Labels() []string {
	labels := make([]string, 0, 8)
	for h := 10; h <= 17; h++ {
		labels = append(labels, fmt.Sprintf("%02d:00", h))
	}
	return labels
}

func (hourBucketer) Index(t time.Time) int {
	h := t.Hour()
	if h < 10 || h > 17 {
		return -1
	}
	return h - 10
}

type weekdayBucketer struct{}

func (weekdayBucketer) Labels() []string {
	return []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
}

func (weekdayBucketer) Index(t time.Time) int {
	// time.Weekday starts the week on Sunday; the trend starts on Monday.
	return (int(t.Weekday()) + 6) % 7
}

// weekOfMonthBucketer groups days 1-7, 8-14, 15-21 and 22 onward; the odd
// days at the end of longer months fold into week 4.
type weekOfMonthBucketer struct{}

func (weekOfMonthBucketer) Labels() []string {
	return []string{"Week 1", "Week 2", "Week 3", "Week 4"}
}

func (weekOfMonthBucketer) Index(t time.Time) int {
	week := (t.Day() - 1) / 7
	if week > 3 {
		week = 3
	}
	return week
}

type monthBucketer struct{}

func (monthBucketer) Labels() []string {
	return []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
}

func (monthBucketer) Index(t time.Time) int {
	return int(t.Month()) - 1
}

package attendance

import (
	"errors"
	"fmt"
	"time"

	"fitwise/internal/domain/profile"
)

// DateLayout is the ISO calendar date format used for attendance entries.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for strings that are not ISO calendar dates.
var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

// Day is one cell of the recent-days calendar.
type Day struct {
	Date     string `json:"date"`
	Attended bool   `json:"attended"`
}

// ParseDate validates an ISO date string.
// PRE: none
// POST: Returns the parsed date at UTC midnight or ErrInvalidDate
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders t as an attendance date in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the attendance date for now.
func Today(now time.Time) string {
	return FormatDate(now)
}

// MarkPresent inserts date into the profile's attendance set.
// PRE: date is a valid ISO date
// POST: date is present exactly once; returns true if the set changed
// INVARIANT: attendance never contains duplicates
func MarkPresent(p *profile.Profile, date string) (bool, error) {
	if _, err := ParseDate(date); err != nil {
		return false, err
	}
	if IsPresent(*p, date) {
		return false, nil
	}
	p.Attendance = append(p.Attendance, date)
	return true, nil
}

// MarkAbsent removes date from the profile's attendance set.
// PRE: date is a valid ISO date
// POST: date is absent; returns true if the set changed
func MarkAbsent(p *profile.Profile, date string) (bool, error) {
	if _, err := ParseDate(date); err != nil {
		return false, err
	}
	for i, d := range p.Attendance {
		if d == date {
			p.Attendance = append(p.Attendance[:i:i], p.Attendance[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// IsPresent reports whether date is in the attendance set.
func IsPresent(p profile.Profile, date string) bool {
	for _, d := range p.Attendance {
		if d == date {
			return true
		}
	}
	return false
}

// TotalCount is the size of the attendance set.
func TotalCount(p profile.Profile) int {
	return len(p.Attendance)
}

// CountInMonth counts dates whose calendar month equals month, across all years.
func CountInMonth(p profile.Profile, month time.Month) int {
	n := 0
	for _, d := range p.Attendance {
		if t, err := ParseDate(d); err == nil && t.Month() == month {
			n++
		}
	}
	return n
}

// CountInYearMonth counts dates falling in the given year and month.
func CountInYearMonth(p profile.Profile, year int, month time.Month) int {
	n := 0
	for _, d := range p.Attendance {
		if t, err := ParseDate(d); err == nil && t.Year() == year && t.Month() == month {
			n++
		}
	}
	return n
}

// LastVisit returns the most recent attendance date by date comparison.
// Insertion order is not trusted since removals and back-dated marks occur.
func LastVisit(p profile.Profile) (string, bool) {
	var latest time.Time
	found := ""
	for _, d := range p.Attendance {
		t, err := ParseDate(d)
		if err != nil {
			continue
		}
		if found == "" || t.After(latest) {
			latest = t
			found = d
		}
	}
	return found, found != ""
}

// RecentDays lists the last n calendar days ending at today, most recent first.
// PRE: today is a valid ISO date, n >= 0
func RecentDays(p profile.Profile, today string, n int) ([]Day, error) {
	end, err := ParseDate(today)
	if err != nil {
		return nil, err
	}
	days := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		d := FormatDate(end.AddDate(0, 0, -i))
		days = append(days, Day{Date: d, Attended: IsPresent(p, d)})
	}
	return days, nil
}

// CheckIn is one row of the admin daily log.
// CheckedInAt is zero for back-dated marks.
type CheckIn struct {
	ProfileID   string    `json:"profileId"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Date        string    `json:"date"`
	CheckedInAt time.Time `json:"checkedInAt,omitzero"`
}

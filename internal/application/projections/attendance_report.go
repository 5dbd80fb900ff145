package projections

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"fitwise/internal/domain/attendance"
)

// Report ranges
const (
	RangeLast7Days  = "last7days"
	RangeLast14Days = "last14days"
	RangeLast30Days = "last30days"
)

// Peak-hour window, inclusive, in 24h clock.
const (
	FirstPeakHour = 6
	LastPeakHour  = 21
)

// ErrInvalidRange is returned for an unknown range key.
var ErrInvalidRange = errors.New("range must be one of: last7days, last14days, last30days")

// RangeDays maps a range key to its length in days.
func RangeDays(key string) (int, bool) {
	switch key {
	case RangeLast7Days:
		return 7, true
	case RangeLast14Days, "":
		return 14, true
	case RangeLast30Days:
		return 30, true
	}
	return 0, false
}

// AttendanceReportQuery carries query parameters.
// Empty EndDate and LogDate mean today.
type AttendanceReportQuery struct {
	Range   string
	EndDate string
	LogDate string
}

// DailyCount is one point of the trend series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HourCount is one bar of the peak-hours histogram.
type HourCount struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AttendanceReport is the admin attendance view.
type AttendanceReport struct {
	Range         string               `json:"range"`
	From          string               `json:"from"`
	To            string               `json:"to"`
	Series        []DailyCount         `json:"series"`
	Today         int                  `json:"today"`
	Yesterday     int                  `json:"yesterday"`
	PercentChange int                  `json:"percentChange"`
	WeekTotal     int                  `json:"weekTotal"`
	PeakHours     []HourCount          `json:"peakHours"`
	BusiestHour   *HourCount           `json:"busiestHour,omitempty"`
	LogDate       string               `json:"logDate"`
	Log           []attendance.CheckIn `json:"log"`
}

// AttendanceReportDeps holds dependencies for AttendanceReport.
type AttendanceReportDeps struct {
	AttendanceStore AttendanceReader
	Now             func() time.Time
}

// QueryAttendanceReport aggregates attendance over a range ending at EndDate.
// PRE: none
// POST: Series holds one zero-filled entry per day, oldest first
// INVARIANT: Today and Yesterday are relative to EndDate, not the wall clock
func QueryAttendanceReport(ctx context.Context, query AttendanceReportQuery, deps AttendanceReportDeps) (AttendanceReport, error) {
	days, ok := RangeDays(query.Range)
	if !ok {
		return AttendanceReport{}, ErrInvalidRange
	}
	rangeKey := query.Range
	if rangeKey == "" {
		rangeKey = RangeLast14Days
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	endDate := query.EndDate
	if endDate == "" {
		endDate = attendance.Today(now)
	}
	end, err := attendance.ParseDate(endDate)
	if err != nil {
		return AttendanceReport{}, err
	}
	logDate := query.LogDate
	if logDate == "" {
		logDate = endDate
	}
	if _, err := attendance.ParseDate(logDate); err != nil {
		return AttendanceReport{}, err
	}

	// the week and yesterday figures need at least 7 days of counts
	span := max(days, 7)
	from := attendance.FormatDate(end.AddDate(0, 0, -(span - 1)))
	counts, err := deps.AttendanceStore.DailyCounts(ctx, from, endDate)
	if err != nil {
		return AttendanceReport{}, err
	}

	r := AttendanceReport{
		Range:   rangeKey,
		From:    attendance.FormatDate(end.AddDate(0, 0, -(days - 1))),
		To:      endDate,
		Today:   counts[endDate],
		LogDate: logDate,
	}
	r.Yesterday = counts[attendance.FormatDate(end.AddDate(0, 0, -1))]
	r.PercentChange = PercentChange(r.Today, r.Yesterday)
	for i := 0; i < 7; i++ {
		r.WeekTotal += counts[attendance.FormatDate(end.AddDate(0, 0, -i))]
	}
	r.Series = make([]DailyCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := attendance.FormatDate(end.AddDate(0, 0, -i))
		r.Series = append(r.Series, DailyCount{Date: d, Count: counts[d]})
	}

	hours, err := deps.AttendanceStore.CheckInHours(ctx, r.From, r.To)
	if err != nil {
		return AttendanceReport{}, err
	}
	r.PeakHours = make([]HourCount, 0, LastPeakHour-FirstPeakHour+1)
	for h := FirstPeakHour; h <= LastPeakHour; h++ {
		hc := HourCount{Hour: h, Label: HourLabel(h), Count: hours[h]}
		r.PeakHours = append(r.PeakHours, hc)
		if hc.Count > 0 && (r.BusiestHour == nil || hc.Count > r.BusiestHour.Count) {
			busiest := hc
			r.BusiestHour = &busiest
		}
	}

	r.Log, err = deps.AttendanceStore.DailyLog(ctx, logDate)
	if err != nil {
		return AttendanceReport{}, err
	}
	if r.Log == nil {
		r.Log = []attendance.CheckIn{}
	}
	return r, nil
}

// PercentChange is the rounded day-over-day change, 0 when there is no baseline.
func PercentChange(today, yesterday int) int {
	if yesterday == 0 {
		return 0
	}
	return int(math.Round(float64(today-yesterday) / float64(yesterday) * 100))
}

// HourLabel renders a 24h hour as "6 AM", "12 PM" and so on.
func HourLabel(h int) string {
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d %s", h12, suffix)
}

package projections

import (
	"context"
	"encoding/csv"
	"io"

	"fitwise/internal/domain/attendance"
)

// ExportHeader is the first CSV row.
var ExportHeader = []string{"name", "phone", "date", "time"}

// ExportTimeLayout renders check-in times the way the admin log shows them.
const ExportTimeLayout = "03:04 PM"

// AttendanceExportQuery carries query parameters.
type AttendanceExportQuery struct {
	Date string
}

// AttendanceExportDeps holds dependencies for AttendanceExport.
type AttendanceExportDeps struct {
	AttendanceStore AttendanceReader
}

// QueryAttendanceExport writes the daily log for Date as CSV to w.
// PRE: Date is YYYY-MM-DD
// POST: w holds the header plus one row per check-in; untimed marks have an empty time
func QueryAttendanceExport(ctx context.Context, query AttendanceExportQuery, deps AttendanceExportDeps, w io.Writer) (int, error) {
	if _, err := attendance.ParseDate(query.Date); err != nil {
		return 0, err
	}
	log, err := deps.AttendanceStore.DailyLog(ctx, query.Date)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return 0, err
	}
	for _, c := range log {
		clock := ""
		if !c.CheckedInAt.IsZero() {
			clock = c.CheckedInAt.Format(ExportTimeLayout)
		}
		if err := cw.Write([]string{c.Name, c.Phone, c.Date, clock}); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(log), cw.Error()
}

package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fitwise/internal/adapters/email"
	"fitwise/internal/application/projections"
)

// EmailReportInput carries input for the attendance report email.
// Empty To falls back to the configured recipients.
type EmailReportInput struct {
	Actor   Actor
	Range   string
	EndDate string
	To      []string
}

// EmailReportDeps holds dependencies for EmailAttendanceReport.
type EmailReportDeps struct {
	AttendanceStore projections.AttendanceReader
	Sender          email.Sender
	Render          func(markdown string) (string, error)
	DefaultTo       []string
	Now             func() time.Time
}

// ExecuteEmailAttendanceReport builds the attendance report and mails it.
// PRE: Actor is an admin
// POST: One message is handed to the sender; returns its receipt
func ExecuteEmailAttendanceReport(ctx context.Context, input EmailReportInput, deps EmailReportDeps) (email.Receipt, error) {
	if !input.Actor.IsAdmin() {
		return email.Receipt{}, ErrForbidden
	}
	to := input.To
	if len(to) == 0 {
		to = deps.DefaultTo
	}
	if len(to) == 0 {
		return email.Receipt{}, email.ErrNoRecipients
	}

	report, err := projections.QueryAttendanceReport(ctx, projections.AttendanceReportQuery{
		Range:   input.Range,
		EndDate: input.EndDate,
	}, projections.AttendanceReportDeps{AttendanceStore: deps.AttendanceStore, Now: deps.Now})
	if err != nil {
		return email.Receipt{}, err
	}

	md := ReportMarkdown(report)
	msg := email.Message{
		To:      to,
		Subject: fmt.Sprintf("FitWise attendance %s to %s", report.From, report.To),
		Text:    md,
	}
	if deps.Render != nil {
		html, err := deps.Render(md)
		if err != nil {
			return email.Receipt{}, fmt.Errorf("render report: %w", err)
		}
		msg.HTML = html
	}

	receipt, err := deps.Sender.Send(ctx, msg)
	if err != nil {
		slog.Error("email_event", "event", "report_failed", "error", err)
		return email.Receipt{}, err
	}
	slog.Info("email_event", "event", "report_sent", "message_id", receipt.MessageID, "recipients", len(to), "by", input.Actor.ProfileID)
	return receipt, nil
}

// ReportMarkdown renders the report as a Markdown document.
func ReportMarkdown(r projections.AttendanceReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Attendance report\n\n")
	fmt.Fprintf(&b, "**Period:** %s to %s\n\n", r.From, r.To)
	fmt.Fprintf(&b, "- Today: **%d** (%+d%% from yesterday)\n", r.Today, r.PercentChange)
	fmt.Fprintf(&b, "- Yesterday: %d\n", r.Yesterday)
	fmt.Fprintf(&b, "- Last 7 days: %d\n", r.WeekTotal)
	if r.BusiestHour != nil {
		fmt.Fprintf(&b, "- Busiest hour: %s (%d check-ins)\n", r.BusiestHour.Label, r.BusiestHour.Count)
	}

	b.WriteString("\n## Daily counts\n\n| Date | Visits |\n|---|---|\n")
	for _, d := range r.Series {
		fmt.Fprintf(&b, "| %s | %d |\n", d.Date, d.Count)
	}

	fmt.Fprintf(&b, "\n## Check-ins on %s\n\n", r.LogDate)
	if len(r.Log) == 0 {
		b.WriteString("No check-ins.\n")
		return b.String()
	}
	b.WriteString("| Name | Phone | Time |\n|---|---|---|\n")
	for _, c := range r.Log {
		clock := "n/a"
		if !c.CheckedInAt.IsZero() {
			clock = c.CheckedInAt.Format(projections.ExportTimeLayout)
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(c.Name), escapeCell(c.Phone), clock)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

package projections

import (
	"context"
	"errors"
	"math"
	"time"

	"fitwise/internal/domain/advisor"
	"fitwise/internal/domain/attendance"
	"fitwise/internal/domain/diet"
	domainProfile "fitwise/internal/domain/profile"
)

// Summary constants
const (
	MonthlyVisitGoal = 30
	CalendarDays     = 14
)

// ErrProfileNotFound is returned when the summary subject does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileSummaryQuery carries query parameters.
type ProfileSummaryQuery struct {
	ProfileID string
}

// BMIView is present only when both measurements are recorded.
type BMIView struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

// ProfileSummary is the member dashboard view.
type ProfileSummary struct {
	Profile         domainProfile.Profile `json:"profile"`
	TotalVisits     int                   `json:"totalVisits"`
	MonthVisits     int                   `json:"monthVisits"`
	LastVisit       string                `json:"lastVisit,omitempty"`
	MonthlyGoal     int                   `json:"monthlyGoal"`
	GoalProgressPct int                   `json:"goalProgressPct"`
	VisitsRemaining int                   `json:"visitsRemaining"`
	PresentToday    bool                  `json:"presentToday"`
	RecentDays      []attendance.Day      `json:"recentDays"`
	Motivation      string                `json:"motivation"`
	Quote           string                `json:"quote"`
	BMI             *BMIView              `json:"bmi,omitempty"`
}

// ProfileSummaryDeps holds dependencies for ProfileSummary.
type ProfileSummaryDeps struct {
	ProfileStore ProfileReader
	Now          func() time.Time
}

// QueryProfileSummary builds the dashboard view for one profile.
// PRE: ProfileID is non-empty
// POST: Returns the summary or ErrProfileNotFound
// INVARIANT: month counts use the current calendar year and month
func QueryProfileSummary(ctx context.Context, query ProfileSummaryQuery, deps ProfileSummaryDeps) (ProfileSummary, error) {
	p, ok, err := deps.ProfileStore.GetByID(ctx, query.ProfileID)
	if err != nil {
		return ProfileSummary{}, err
	}
	if !ok {
		return ProfileSummary{}, ErrProfileNotFound
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	today := attendance.Today(now)

	month := attendance.CountInYearMonth(p, now.Year(), now.Month())
	days, err := attendance.RecentDays(p, today, CalendarDays)
	if err != nil {
		return ProfileSummary{}, err
	}
	last, _ := attendance.LastVisit(p)

	s := ProfileSummary{
		Profile:         p,
		TotalVisits:     attendance.TotalCount(p),
		MonthVisits:     month,
		LastVisit:       last,
		MonthlyGoal:     MonthlyVisitGoal,
		GoalProgressPct: min(month*100/MonthlyVisitGoal, 100),
		VisitsRemaining: max(MonthlyVisitGoal-month, 0),
		PresentToday:    attendance.IsPresent(p, today),
		RecentDays:      days,
		Motivation:      advisor.MotivationFor(attendance.TotalCount(p)),
		Quote:           advisor.QuoteOfTheDay(now),
	}
	if p.HasMeasurements() {
		if bmi, err := diet.BMI(p.HeightCm, p.WeightKg); err == nil {
			s.BMI = &BMIView{Value: math.Round(bmi*10) / 10, Category: diet.BMICategory(bmi)}
		}
	}
	return s, nil
}

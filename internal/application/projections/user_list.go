package projections

import (
	"context"
	"time"

	"fitwise/internal/adapters/storage/profile"
	"fitwise/internal/application/listutil"
	"fitwise/internal/domain/attendance"
)

// UserListQuery carries query parameters.
type UserListQuery struct {
	listutil.ListParams
}

// UserRow is one row of the admin user table.
type UserRow struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Role            string  `json:"role"`
	HeightCm        float64 `json:"height"`
	WeightKg        float64 `json:"weight"`
	AttendanceCount int     `json:"attendanceCount"`
	LastVisit       string  `json:"lastVisit,omitempty"`
	PresentToday    bool    `json:"presentToday"`
}

// UserListResult carries the query result.
type UserListResult struct {
	Users []UserRow         `json:"users"`
	Page  listutil.PageInfo `json:"page"`
}

// UserListDeps holds dependencies for UserList.
type UserListDeps struct {
	ProfileStore ProfileLister
	Now          func() time.Time
}

// QueryUserList lists profiles matching the search, one page at a time.
// PRE: none
// POST: Users is never nil; Page reflects the filtered total
func QueryUserList(ctx context.Context, query UserListQuery, deps UserListDeps) (UserListResult, error) {
	filter := profile.ListFilter{Search: query.Search}
	total, err := deps.ProfileStore.Count(ctx, filter)
	if err != nil {
		return UserListResult{}, err
	}
	page := listutil.NewPageInfo(query.Page, query.PerPage, total)
	filter.Limit = page.PerPage
	filter.Offset = page.Offset()

	profiles, err := deps.ProfileStore.List(ctx, filter)
	if err != nil {
		return UserListResult{}, err
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	today := attendance.Today(now)

	rows := make([]UserRow, 0, len(profiles))
	for _, p := range profiles {
		last, _ := attendance.LastVisit(p)
		rows = append(rows, UserRow{
			ID:              p.ID,
			Name:            p.Name,
			Phone:           p.Phone,
			Role:            p.Role,
			HeightCm:        p.HeightCm,
			WeightKg:        p.WeightKg,
			AttendanceCount: attendance.TotalCount(p),
			LastVisit:       last,
			PresentToday:    attendance.IsPresent(p, today),
		})
	}
	return UserListResult{Users: rows, Page: page}, nil
}

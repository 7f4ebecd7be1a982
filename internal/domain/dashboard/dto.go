package dashboard

// Stats is the server-computed snapshot behind GET /dashboard.
type Stats struct {
	TotalEmployees    int     `json:"total_employees"`
	TotalPresentToday int     `json:"total_present_today"`
	TotalAbsentToday  int     `json:"total_absent_today"`
	AttendanceRate    float64 `json:"attendance_rate"`
}

// PendingToday is derived locally; the rate is taken from the server as-is.
func (s Stats) PendingToday() int {
	return s.TotalEmployees - s.TotalPresentToday - s.TotalAbsentToday
}

// Overview is the dashboard view model
type Overview struct {
	TotalEmployees    int     `json:"total_employees"`
	TotalPresentToday int     `json:"total_present_today"`
	TotalAbsentToday  int     `json:"total_absent_today"`
	PendingToday      int     `json:"pending_today"`
	AttendanceRate    float64 `json:"attendance_rate"`
}

func NewOverview(s Stats) Overview {
	return Overview{
		TotalEmployees:    s.TotalEmployees,
		TotalPresentToday: s.TotalPresentToday,
		TotalAbsentToday:  s.TotalAbsentToday,
		PendingToday:      s.PendingToday(),
		AttendanceRate:    s.AttendanceRate,
	}
}

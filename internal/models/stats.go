package models

// DashboardStats summarises the catalog for the dashboard. StatesCovered and
// ActiveAlerts are configuration constants standing in for future
// aggregations.
type DashboardStats struct {
	TotalTrainings    int `json:"total_trainings"`
	TotalParticipants int `json:"total_participants"`
	StatesCovered     int `json:"states_covered"`
	ActiveAlerts      int `json:"active_alerts"`
}

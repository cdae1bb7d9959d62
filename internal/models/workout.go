package models

type WorkoutStats struct {
	Workouts        int     `json:"workouts"`
	TotalDistanceKM float64 `json:"total_distance_km"`
	TotalMinutes    int     `json:"total_minutes"`
	ActivityTypes   int     `json:"activity_types"`
}

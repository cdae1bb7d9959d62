package models

import "time"

type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FitnessGoal *string   `json:"fitness_goal"`
	Weight      *float64  `json:"weight"`
	Height      *float64  `json:"height"`
	Age         *int      `json:"age"`
	CreatedAt   time.Time `json:"created_at"`
}

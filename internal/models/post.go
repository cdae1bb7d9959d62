package models

import "time"

type Post struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Content      string    `json:"content"`
	ImageURL     *string   `json:"image_url"`
	ActivityType string    `json:"activity_type"`
	Duration     string    `json:"duration"`
	Distance     *float64  `json:"distance"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostAuthor is the slice of the owning profile joined onto feed rows.
type PostAuthor struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FitnessGoal *string `json:"fitness_goal"`
}

type FeedPost struct {
	Post
	Profiles PostAuthor `json:"profiles"`
}

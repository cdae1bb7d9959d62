package repository

import (
	"context"

	"github.com/ogc16/FitnessApp/internal/models"
)

type CreatePostInput struct {
	UserID       string
	Content      string
	ImageURL     *string
	ActivityType string
	Duration     string
	Distance     *float64
}

type PostRepository struct {
	db DBTX
}

func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

// duration is read back as text so the HH:MM:SS form survives the round trip.
func (r *PostRepository) Create(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	query := `
		INSERT INTO posts (user_id, content, image_url, activity_type, duration, distance)
		VALUES ($1, $2, $3, $4, $5::interval, $6)
		RETURNING id, user_id, content, image_url, activity_type, duration::text, distance, created_at
	`
	var post models.Post
	err := r.db.QueryRow(ctx, query,
		input.UserID,
		input.Content,
		input.ImageURL,
		input.ActivityType,
		input.Duration,
		input.Distance,
	).Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&post.ImageURL,
		&post.ActivityType,
		&post.Duration,
		&post.Distance,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Feed returns posts joined with their author, newest first. A limit of zero
// or less returns every post.
func (r *PostRepository) Feed(ctx context.Context, limit int) ([]models.FeedPost, error) {
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}

	query := `
		SELECT p.id, p.user_id, p.content, p.image_url, p.activity_type, p.duration::text,
			   p.distance, p.created_at, pr.id, pr.email, pr.fitness_goal
		FROM posts p
		JOIN profiles pr ON pr.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limitArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]models.FeedPost, 0)
	for rows.Next() {
		var post models.FeedPost
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Content,
			&post.ImageURL,
			&post.ActivityType,
			&post.Duration,
			&post.Distance,
			&post.CreatedAt,
			&post.Profiles.ID,
			&post.Profiles.Email,
			&post.Profiles.FitnessGoal,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	query := `
		SELECT id, user_id, content, image_url, activity_type, duration::text, distance, created_at
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Content,
			&post.ImageURL,
			&post.ActivityType,
			&post.Duration,
			&post.Distance,
			&post.CreatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepository) Stats(ctx context.Context, userID string) (*models.WorkoutStats, error) {
	query := `
		SELECT COUNT(*),
			   COALESCE(SUM(distance), 0),
			   COALESCE(EXTRACT(EPOCH FROM SUM(duration))::bigint / 60, 0),
			   COUNT(DISTINCT activity_type)
		FROM posts
		WHERE user_id = $1
	`
	var stats models.WorkoutStats
	var totalMinutes int64
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.Workouts,
		&stats.TotalDistanceKM,
		&totalMinutes,
		&stats.ActivityTypes,
	)
	if err != nil {
		return nil, err
	}
	stats.TotalMinutes = int(totalMinutes)
	return &stats, nil
}

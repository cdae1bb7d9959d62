package repository

import (
	"context"

	"github.com/ogc16/FitnessApp/internal/models"
)

type CreateProfileInput struct {
	ID          string
	Email       string
	FitnessGoal *string
	Weight      *float64
	Height      *float64
	Age         *int
}

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, input CreateProfileInput) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (id, email, fitness_goal, weight, height, age)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, fitness_goal, weight, height, age, created_at
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query,
		input.ID,
		input.Email,
		input.FitnessGoal,
		input.Weight,
		input.Height,
		input.Age,
	).Scan(
		&profile.ID,
		&profile.Email,
		&profile.FitnessGoal,
		&profile.Weight,
		&profile.Height,
		&profile.Age,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, email, fitness_goal, weight, height, age, created_at
		FROM profiles
		WHERE id = $1
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Email,
		&profile.FitnessGoal,
		&profile.Weight,
		&profile.Height,
		&profile.Age,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

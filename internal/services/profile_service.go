package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/repository"
)

type CreateProfileInput struct {
	FitnessGoal *string
	Weight      *float64
	Height      *float64
	Age         *int
}

func (in *CreateProfileInput) Validate() error {
	if in.Weight != nil && *in.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	if in.Height != nil && *in.Height <= 0 {
		return fmt.Errorf("%w: height must be positive", ErrInvalidInput)
	}
	if in.Age != nil && (*in.Age <= 0 || *in.Age > 130) {
		return fmt.Errorf("%w: age is out of range", ErrInvalidInput)
	}
	if in.FitnessGoal != nil {
		goal := strings.TrimSpace(*in.FitnessGoal)
		if goal == "" {
			in.FitnessGoal = nil
		} else {
			in.FitnessGoal = &goal
		}
	}
	return nil
}

type profileStore interface {
	Create(ctx context.Context, input repository.CreateProfileInput) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}

type statsReader interface {
	Stats(ctx context.Context, userID string) (*models.WorkoutStats, error)
}

type ProfileService struct {
	profileRepo profileStore
	postRepo    statsReader
}

func NewProfileService(profileRepo profileStore, postRepo statsReader) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		postRepo:    postRepo,
	}
}

func (s *ProfileService) Create(ctx context.Context, userID, email string, input CreateProfileInput) (*models.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.Create(ctx, repository.CreateProfileInput{
		ID:          userID,
		Email:       email,
		FitnessGoal: input.FitnessGoal,
		Weight:      input.Weight,
		Height:      input.Height,
		Age:         input.Age,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) Stats(ctx context.Context, userID string) (*models.WorkoutStats, error) {
	stats, err := s.postRepo.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("workout stats: %w", err)
	}
	return stats, nil
}

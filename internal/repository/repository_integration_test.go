//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ogc16/FitnessApp/internal/database"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newIntegrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("fitfeed"),
		postgrescontainer.WithUsername("fitfeed"),
		postgrescontainer.WithPassword("fitfeed"),
		postgrescontainer.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationsDir, err := database.FindMigrationsDir()
	require.NoError(t, err)
	require.NoError(t, database.Migrate(connStr, migrationsDir, "up"))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createProfile(t *testing.T, repo *ProfileRepository, email, goal string) *models.Profile {
	t.Helper()
	weight := 70.0
	profile, err := repo.Create(context.Background(), CreateProfileInput{
		ID:          uuid.NewString(),
		Email:       email,
		FitnessGoal: &goal,
		Weight:      &weight,
	})
	require.NoError(t, err)
	return profile
}

func TestPostRepositoryFeedAndStats(t *testing.T) {
	ctx := context.Background()
	pool := newIntegrationPool(t)
	profiles := NewProfileRepository(pool)
	posts := NewPostRepository(pool)

	alice := createProfile(t, profiles, "alice@example.com", "Marathon")
	bob := createProfile(t, profiles, "bob@example.com", "Strength")

	five := 5.0
	first, err := posts.Create(ctx, CreatePostInput{UserID: alice.ID, ActivityType: "Running", Duration: "00:45:00", Distance: &five})
	require.NoError(t, err)
	require.Equal(t, "00:45:00", first.Duration)

	time.Sleep(10 * time.Millisecond)
	_, err = posts.Create(ctx, CreatePostInput{UserID: bob.ID, ActivityType: "Weight Training", Duration: "01:15:00", Content: "leg day"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	third, err := posts.Create(ctx, CreatePostInput{UserID: alice.ID, ActivityType: "Yoga", Duration: "00:30:00"})
	require.NoError(t, err)

	feed, err := posts.Feed(ctx, 0)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	limited, err := posts.Feed(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, third.ID, limited[0].ID)
	require.Equal(t, third.ID, feed[0].ID)
	require.Equal(t, first.ID, feed[2].ID)
	require.Equal(t, "alice@example.com", feed[0].Profiles.Email)
	require.Equal(t, "Marathon", *feed[0].Profiles.FitnessGoal)
	require.Equal(t, "Strength", *feed[1].Profiles.FitnessGoal)

	recent, err := posts.ListByUser(ctx, alice.ID, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, third.ID, recent[0].ID)

	stats, err := posts.Stats(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Workouts)
	require.Equal(t, 75, stats.TotalMinutes)
	require.InDelta(t, 5.0, stats.TotalDistanceKM, 0.001)
	require.Equal(t, 2, stats.ActivityTypes)
}

func TestPostRepositoryEnforcesSchema(t *testing.T) {
	ctx := context.Background()
	pool := newIntegrationPool(t)
	posts := NewPostRepository(pool)
	alice := createProfile(t, NewProfileRepository(pool), "alice@example.com", "Marathon")

	_, err := posts.Create(ctx, CreatePostInput{UserID: uuid.NewString(), ActivityType: "Running", Duration: "00:10:00"})
	require.Error(t, err, "unknown profile must violate the foreign key")

	_, err = posts.Create(ctx, CreatePostInput{UserID: alice.ID, ActivityType: "Skydiving", Duration: "00:10:00"})
	require.Error(t, err, "activity type outside the enumeration")

	stats, err := posts.Stats(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Equal(t, models.WorkoutStats{}, *stats)
}

func TestAccountAndProfileRepositories(t *testing.T) {
	ctx := context.Background()
	pool := newIntegrationPool(t)
	accounts := NewAccountRepository(pool)

	account := &models.Account{ID: uuid.NewString(), Email: "carol@example.com", PasswordHash: "hash"}
	require.NoError(t, accounts.Create(ctx, account))
	require.False(t, account.CreatedAt.IsZero())

	byEmail, err := accounts.GetByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	require.Equal(t, account.ID, byEmail.ID)

	duplicate := &models.Account{ID: uuid.NewString(), Email: "carol@example.com", PasswordHash: "hash"}
	require.Error(t, accounts.Create(ctx, duplicate))

	_, err = NewProfileRepository(pool).GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

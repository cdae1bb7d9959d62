package routes

import (
	"context"
	"log"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ogc16/FitnessApp/internal/config"
	"github.com/ogc16/FitnessApp/internal/events"
	"github.com/ogc16/FitnessApp/internal/handlers"
	"github.com/ogc16/FitnessApp/internal/middleware"
	"github.com/ogc16/FitnessApp/internal/repository"
	"github.com/ogc16/FitnessApp/internal/services"
	feedws "github.com/ogc16/FitnessApp/internal/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Closer releases what RegisterRoutes started: the hub goroutine and the
// Kafka writer.
type Closer func() error

func RegisterRoutes(ctx context.Context, app *fiber.App, cfg *config.Config, db *pgxpool.Pool) (Closer, error) {
	accountRepo := repository.NewAccountRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	storageService, err := newStorageService(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var authProvider services.AuthProvider
	if cfg.SupabaseAuthEnabled() {
		log.Println("Auth provider: Supabase GoTrue")
		authProvider = services.NewSupabaseAuthProvider(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	} else {
		log.Println("Auth provider: local accounts")
		authProvider = services.NewLocalAuthProvider(accountRepo, cfg.JWTSecret)
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	feedHub := feedws.NewHub()
	go feedHub.Run(hubCtx)

	publishers := events.Multi{feedHub}
	var kafkaPublisher *events.KafkaPublisher
	if cfg.KafkaEnabled() {
		kafkaPublisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.PostEventsTopic)
		publishers = append(publishers, kafkaPublisher)
	}

	profileService := services.NewProfileService(profileRepo, postRepo)
	authService := services.NewAuthService(authProvider, profileService)
	postService := services.NewPostService(postRepo, publishers)

	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	postHandler := handlers.NewPostHandler(postService, storageService)
	feedSocketHandler := handlers.NewFeedSocketHandler(feedHub, cfg.JWTSecret)

	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/login", authHandler.Login)
	auth.Get("/session", authHandler.Session)
	auth.Post("/logout", authHandler.Logout)

	api.Use("/v1/ws", feedSocketHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(feedSocketHandler.HandleWebSocket))

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	authProtected.Get("/feed", postHandler.Feed)

	posts := authProtected.Group("/posts")
	posts.Post("", postHandler.CreatePost)
	posts.Post("/image", postHandler.UploadImage)

	authProtected.Post("/profiles", profileHandler.CreateProfile)
	authProtected.Get("/profile", profileHandler.GetProfile)
	authProtected.Get("/profile/stats", profileHandler.Stats)

	authProtected.Get("/workouts/recent", postHandler.RecentWorkouts)

	return func() error {
		stopHub()
		if kafkaPublisher != nil {
			return kafkaPublisher.Close()
		}
		return nil
	}, nil
}

func newStorageService(ctx context.Context, cfg *config.Config) (services.StorageService, error) {
	switch {
	case cfg.SupabaseStorageEnabled():
		return services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey), nil
	case cfg.S3StorageEnabled():
		return services.NewS3StorageService(ctx, cfg.AWSBucketName, cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
	default:
		log.Println("No image storage configured; uploads are disabled")
		return nil, nil
	}
}

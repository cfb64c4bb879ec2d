package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devcamper/bootcamp-directory/internal/api"
	"github.com/devcamper/bootcamp-directory/internal/api/handler"
	"github.com/devcamper/bootcamp-directory/internal/core/service"
	"github.com/devcamper/bootcamp-directory/internal/infrastructure/config"
	mongodb "github.com/devcamper/bootcamp-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/devcamper/bootcamp-directory/internal/infrastructure/db/redis"
	"github.com/devcamper/bootcamp-directory/internal/infrastructure/geocode"
	"github.com/devcamper/bootcamp-directory/internal/infrastructure/mail"
	"github.com/devcamper/bootcamp-directory/internal/infrastructure/queue"
	"github.com/devcamper/bootcamp-directory/internal/infrastructure/storage"
	"github.com/devcamper/bootcamp-directory/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- External collaborators ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	photoStore, err := storage.NewLocalStore(cfg.Upload.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("upload storage init failed")
	}

	mailer := mail.New(mail.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		FromName:  cfg.SMTP.FromName,
	})
	geocoder := geocode.New()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	bootcampRepo := mongodb.NewBootcampRepository(db)
	courseRepo := mongodb.NewCourseRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":     userRepo.EnsureIndexes,
		"bootcamps": bootcampRepo.EnsureIndexes,
		"courses":   courseRepo.EnsureIndexes,
		"reviews":   reviewRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Services ---
	aggregator := service.NewRatingAggregator(reviewRepo, bootcampRepo, log)
	dispatcher := queue.NewDispatcher(0, aggregator, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(userRepo, mailer, cfg.JWTSecret, cfg.JWTTTL, cfg.ResetTTL, log)
	userService := service.NewUserService(userRepo)
	bootcampService := service.NewBootcampService(bootcampRepo, geocoder, photoStore, cfg.Upload.MaxBytes, log)
	courseService := service.NewCourseService(courseRepo, bootcampRepo, log)
	reviewService := service.NewReviewService(reviewRepo, bootcampRepo, dispatcher, log)

	limiter := redisdb.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)

	e := api.NewRouter(api.Deps{
		AuthService:     authService,
		Users:           userRepo,
		UserService:     userService,
		BootcampService: bootcampService,
		CourseService:   courseService,
		ReviewService:   reviewService,
		RateLimiter:     limiter,
		CookieTTL:       cfg.CookieTTL,
		SecureCookie:    cfg.Production(),
		// Twice the photo limit so a max-size multipart upload still reaches
		// the upload policy check instead of dying at the body cap.
		MaxBodyBytes:    2 * cfg.Upload.MaxBytes,
		Health:          handler.NewHealthHandler(),
		Readiness:       handler.NewReadinessHandler(db, rdb),
		Log:             log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server running")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

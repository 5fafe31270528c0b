package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/davidrios/cinemap/internal/config"
	"github.com/davidrios/cinemap/internal/database"
	"github.com/davidrios/cinemap/internal/geocoding"
	"github.com/davidrios/cinemap/internal/handler"
	"github.com/davidrios/cinemap/internal/middleware"
	"github.com/davidrios/cinemap/internal/queue"
	"github.com/davidrios/cinemap/internal/repository"
	"github.com/davidrios/cinemap/internal/router"
	"github.com/davidrios/cinemap/internal/service"
	"github.com/davidrios/cinemap/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	geocoder, err := geocoding.NewProvider(geocoding.ProviderType(cfg.GeocoderProvider), cfg.GeocoderAPIKey)
	if err != nil {
		log.Fatalf("geocoder: %v", err)
	}

	uploader, err := storage.NewS3Uploader(storage.S3Config{
		Bucket:          cfg.StorageBucket,
		Region:          cfg.StorageRegion,
		AccessKeyID:     cfg.StorageAccessKey,
		SecretAccessKey: cfg.StorageSecretKey,
		Endpoint:        cfg.StorageEndpoint,
		PublicBaseURL:   cfg.StoragePublicURL,
	})
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	markers := repository.NewMarkerRepo(db)
	movies := repository.NewMovieRepo(db)
	rooms := repository.NewRoomRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	markerSvc := service.NewMarkerService(markers, geocoder, uploader, queue.PublishRecordEvent)
	movieSvc := service.NewMovieService(movies, uploader, queue.PublishRecordEvent)
	roomSvc := service.NewRoomService(rooms, queue.PublishRecordEvent)

	// The audit consumer reconnects on its own; a broker outage only
	// pauses the record log.
	go func() {
		if err := queue.StartRecordConsumer(); err != nil {
			log.Printf("record consumer stopped: %v", err)
		}
	}()

	e := echo.New()

	// Rate limiting degrades to a no-op when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterRecords(e,
		handler.NewMarkerHandler(markerSvc),
		handler.NewMovieHandler(movieSvc),
		handler.NewRoomHandler(roomSvc),
		cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

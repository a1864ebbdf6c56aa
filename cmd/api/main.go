package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/SyncraLabs/Accountify-sub001/internal/adapters/cache"
	adapterHTTP "github.com/SyncraLabs/Accountify-sub001/internal/adapters/handler/http"
	"github.com/SyncraLabs/Accountify-sub001/internal/adapters/repository"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/domain"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/services"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/workers"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")

	serverPort := getEnv("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is not set")
	}
	jwtIssuer := getEnv("JWT_ISSUER", "accountify")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	completionRepo := repository.NewPostgresCompletionRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		log.Fatalf("Critical: invalid REDIS_DB: %v", err)
	}

	rdb, err := cache.Connect(context.Background(), cache.Config{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})
	if err != nil {
		log.Printf("Redis unavailable, running without cache and rate limiting: %v", err)
		rdb = nil
	} else {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb)
	}

	streakWorker := workers.NewStreakWorker(habitRepo, completionRepo)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	streakWorker.Start(workerCtx)

	tokenService := services.NewTokenService(jwtSecret, jwtIssuer, 24*time.Hour, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	habitService := services.NewHabitService(habitRepo)
	completionService := services.NewCompletionService(completionRepo, habitRepo, streakWorker)
	statusService := services.NewStatusService(habitRepo, completionRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(authService),
		HabitHandler:      adapterHTTP.NewHabitHandler(habitService),
		CompletionHandler: adapterHTTP.NewCompletionHandler(completionService),
		StatusHandler:     adapterHTTP.NewStatusHandler(statusService),
		TokenService:      tokenService,
		DB:                db,
		Redis:             rdb,
		StartTime:         startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Accountify API running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	stopWorker()

	log.Println("Server stopped gracefully.")
}

package main

import (
	"context"
	"io"
	"log"
	"ninjamap/internal/api"
	"ninjamap/internal/config"
	"ninjamap/internal/postgres"
	"ninjamap/internal/redis"
	"ninjamap/internal/routing"
	"ninjamap/internal/service/profile"
	"ninjamap/internal/service/search"
	"ninjamap/internal/worker"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	setupLogging()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initializeDatabaseAndCache(cfg)
	defer closeConnections()

	setupSignalHandler()

	initializeServices()

	worker.StartAllWorkers()

	reportMemoryStats()

	runAPIServer(cfg)
}

func setupLogging() {
	logFile, err := os.OpenFile("ninjamap.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	// The file stays open for the whole process lifetime.

	// Use MultiWriter to output logs to both terminal and file
	multiWriter := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(multiWriter)
}

func initializeDatabaseAndCache(cfg config.Config) {
	postgres.Init(cfg.DBUrl)
	redis.Init(cfg.RedisUrl)
}

func initializeServices() {
	profileService := profile.GetProfileService()
	ctx := context.Background()

	// Load data from PostgreSQL and Redis
	if err := profileService.InitService(ctx); err != nil {
		log.Fatalf("Failed to initialize profile service: %v", err)
	}
}

func runAPIServer(cfg config.Config) {
	// Initialize Gin router
	r := gin.Default()

	deps := api.Dependencies{
		Assembler: routing.NewAssembler(routing.NewClient(cfg.RoutingUrl)),
		Search:    search.NewSearchService(cfg.GeocoderUrl, postgres.GetDB()),
		Profiles:  profile.GetProfileService(),
		Config: map[string]string{
			"port": cfg.Port,
		},
	}
	api.SetupRouter(r, deps)

	// Start the server
	r.Run(cfg.Port)
}

func reportMemoryStats() {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			log.Printf("Alloc = %v MiB, TotalAlloc = %v MiB, Sys = %v MiB, NumGC = %v",
				m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024, m.NumGC)
		}
	}()
}

func closeConnections() {
	if err := postgres.Close(); err != nil {
		log.Printf("Error closing PostgreSQL connection: %v", err)
	}

	if err := redis.Close(); err != nil {
		log.Printf("Error closing Redis connection: %v", err)
	}

	log.Println("PostgreSQL and Redis connections closed successfully")
}

func setupSignalHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Shutdown signal received, closing connections...")
		closeConnections()
		os.Exit(0)
	}()
}

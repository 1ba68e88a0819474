package worker

import (
	"log"
	"time"

	"ninjamap/internal/config"
	"ninjamap/internal/service/profile"
)

// StartProfileWorkers starts the workers that persist profile changes.
// Dirty profiles go to Redis on the fast cycle; the full set goes to
// PostgreSQL on the slow cycle.
func StartProfileWorkers() {
	profileService := profile.GetProfileService()

	redisTicker := time.NewTicker(config.RedisBackupInterval)
	go func() {
		for range redisTicker.C {
			if err := profileService.SaveDirtyProfilesToRedis(); err != nil {
				log.Printf("Error saving profiles to Redis: %v", err)
			}
		}
	}()

	pgTicker := time.NewTicker(config.PostgresBackupInterval)
	go func() {
		for range pgTicker.C {
			if err := profileService.SaveAllProfilesToPG(); err != nil {
				log.Printf("Error saving profiles to PostgreSQL: %v", err)
			}
		}
	}()

	log.Println("Profile workers started with intervals:",
		config.RedisBackupInterval, config.PostgresBackupInterval)
}

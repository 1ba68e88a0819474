package config

import "time"

// Worker intervals
const (
	// RedisBackupInterval defines how often dirty profiles are flushed to Redis
	RedisBackupInterval = 10 * time.Second

	// PostgresBackupInterval defines how often profiles are persisted to PostgreSQL
	PostgresBackupInterval = 60 * time.Second
)

// Routing defaults
const (
	// RoutingTimeout is the client-side cap on a single routing request
	RoutingTimeout = 30 * time.Second

	// GeocoderTimeout caps a single forward-geocoding request
	GeocoderTimeout = 10 * time.Second
)

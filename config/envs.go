package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP               string  // Host IP for the server
	RESTPort             int     // Port for the REST API
	GinMode              string  // Mode for the Gin framework (e.g., release, debug, test)
	DBHost               string  // Hostname or IP address for the database
	DBPort               int     // Port number for the database
	DBUser               string  // Username for the database
	DBPassword           string  // Password for the database
	DBName               string  // Name of the database
	RedisHost            string  // Hostname or IP address for Redis
	RedisPort            int     // Port number for Redis
	RedisPassword        string  // Password for Redis, empty when auth is off
	RouteTTLSeconds      int     // Lifetime of a live route buffer after its first fix
	JWTSecret            string  // Secret key for JWT signing
	JWTIssuer            string  // Issuer claim for JWTs
	RouteTokenTTLSeconds int     // Lifetime of route tokens
	ResolutionMeters     float64 // Default maze cell side in meters
	MaxGridCells         int     // Upper bound on rows*cols of a generated grid
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	// Populate the Config struct with required environment variables
	return Config{
		HostIP:               mustGetEnv("HOST_IP"),
		RESTPort:             mustGetEnvAsInt("REST_PORT"),
		GinMode:              getEnvWithDefault("GIN_MODE", "release"),
		DBHost:               mustGetEnv("DB_HOST"),
		DBPort:               mustGetEnvAsInt("DB_PORT"),
		DBUser:               mustGetEnv("DB_USER"),
		DBPassword:           mustGetEnv("DB_PASS"),
		DBName:               mustGetEnv("DB_NAME"),
		RedisHost:            mustGetEnv("REDIS_HOST"),
		RedisPort:            mustGetEnvAsInt("REDIS_PORT"),
		RedisPassword:        getEnvWithDefault("REDIS_PASS", ""),
		RouteTTLSeconds:      getEnvAsIntWithDefault("ROUTE_TTL_SECONDS", 3600),
		JWTSecret:            mustGetEnv("JWT_SECRET"),
		JWTIssuer:            mustGetEnv("JWT_ISSUER"),
		RouteTokenTTLSeconds: getEnvAsIntWithDefault("ROUTE_TOKEN_TTL_SECONDS", 86400),
		ResolutionMeters:     getEnvAsFloatWithDefault("RESOLUTION_METERS", 1),
		MaxGridCells:         getEnvAsIntWithDefault("MAX_GRID_CELLS", 4_000_000),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable or returns a default value if not set.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault retrieves a float environment variable or returns a default value if not set.
func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}

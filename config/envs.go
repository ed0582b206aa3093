package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	DBHost          string // Hostname or IP address for the database
	DBPort          int    // Port number for the database
	DBUser          string // Username for the database
	DBPassword      string // Password for the database
	DBName          string // Name of the database
	RedisAddr       string // host:port of the Redis server
	RedisPassword   string // Password for Redis, empty for none
	CacheTTLSeconds int    // Lifetime of cached mazes and the recent index
	RecentLimit     int    // Number of maze IDs kept in the recent index
	MazeMaxLevel    int    // Largest maze level accepted from clients
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret       string // Secret key for JWT signing
	JWTIssuer       string // Issuer claim for JWTs
	LogLevel        string // logrus level name
}

// loader collects every missing or malformed variable instead of stopping at the first.
type loader struct {
	problems []string
}

// Load reads the configuration from the environment, after loading a .env
// file when one is present. All problems are reported in a single error.
func Load(envFiles ...string) (Config, error) {
	// A missing .env file is not an error; the environment may already be set.
	_ = godotenv.Load(envFiles...)

	l := &loader{}
	cfg := Config{
		HostIP:          l.getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        l.getEnvAsIntWithDefault("REST_PORT", 8080),
		DBHost:          l.mustGetEnv("DB_HOST"),
		DBPort:          l.mustGetEnvAsInt("DB_PORT"),
		DBUser:          l.mustGetEnv("DB_USER"),
		DBPassword:      l.mustGetEnv("DB_PASS"),
		DBName:          l.mustGetEnv("DB_NAME"),
		RedisAddr:       l.mustGetEnv("REDIS_ADDR"),
		RedisPassword:   l.getEnvWithDefault("REDIS_PASS", ""),
		CacheTTLSeconds: l.getEnvAsIntWithDefault("CACHE_TTL_SECONDS", 3600),
		RecentLimit:     l.getEnvAsIntWithDefault("RECENT_LIMIT", 100),
		MazeMaxLevel:    l.getEnvAsIntWithDefault("MAZE_MAX_LEVEL", 64),
		GinMode:         l.getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:       l.mustGetEnv("JWT_SECRET"),
		JWTIssuer:       l.getEnvWithDefault("JWT_ISSUER", "vinom-maze"),
		LogLevel:        l.getEnvWithDefault("LOG_LEVEL", "info"),
	}

	if cfg.MazeMaxLevel < 1 {
		l.problems = append(l.problems, "MAZE_MAX_LEVEL must be at least 1")
	}

	if len(l.problems) > 0 {
		sort.Strings(l.problems)
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(l.problems, "; "))
	}
	return cfg, nil
}

// mustGetEnv retrieves the value of an environment variable or records it as missing.
func (l *loader) mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		l.problems = append(l.problems, fmt.Sprintf("%s is not set", key))
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer.
func (l *loader) mustGetEnvAsInt(key string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		l.problems = append(l.problems, fmt.Sprintf("%s is not set", key))
		return 0
	}
	return l.atoi(key, valueStr)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func (l *loader) getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault is getEnvWithDefault for integers.
func (l *loader) getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return l.atoi(key, valueStr)
}

func (l *loader) atoi(key, valueStr string) int {
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		l.problems = append(l.problems, fmt.Sprintf("%s must be an integer: %v", key, err))
	}
	return value
}

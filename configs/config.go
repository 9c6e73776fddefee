package configs

import (
	"log"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values
type Config struct {
	Port             string
	JWTSecret        string
	DatabaseURL      string
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string
	PostgresDB       string
	RedisURL         string
	ResultsCacheTTL  time.Duration
}

var (
	ConfigInstance *Config
	once           sync.Once
)

// Load loads configuration from .env file
func Load() *Config {
	once.Do(func() {
		// Viper setup
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
		viper.AddConfigPath(".")

		// Set defaults
		viper.SetDefault("POLL_PORT", "8080")
		viper.SetDefault("POLL_JWT_SECRET", "secret")
		viper.SetDefault("POLL_RESULTS_CACHE_TTL", "30s")
		viper.SetDefault("REDIS_URL", "redis://127.0.0.1:6379/0")
		viper.SetDefault("POSTGRES_USER", "postgres")
		viper.SetDefault("POSTGRES_PASSWORD", "password")
		viper.SetDefault("POSTGRES_HOST", "localhost")
		viper.SetDefault("POSTGRES_PORT", "5432")
		viper.SetDefault("POSTGRES_DB", "postgres")
		viper.AutomaticEnv()

		// Read the .env file
		if err := viper.ReadInConfig(); err != nil {
			log.Printf("Warning: Error reading .env file: %v", err)
			log.Printf("Using environment variables and defaults")
		}

		cacheTTL, err := time.ParseDuration(viper.GetString("POLL_RESULTS_CACHE_TTL"))
		if err != nil {
			log.Fatal("Invalid POLL_RESULTS_CACHE_TTL format")
		}

		ConfigInstance = &Config{
			Port:             viper.GetString("POLL_PORT"),
			JWTSecret:        viper.GetString("POLL_JWT_SECRET"),
			DatabaseURL:      viper.GetString("DATABASE_URL"),
			PostgresUser:     viper.GetString("POSTGRES_USER"),
			PostgresPassword: viper.GetString("POSTGRES_PASSWORD"),
			PostgresHost:     viper.GetString("POSTGRES_HOST"),
			PostgresPort:     viper.GetString("POSTGRES_PORT"),
			PostgresDB:       viper.GetString("POSTGRES_DB"),
			RedisURL:         viper.GetString("REDIS_URL"),
			ResultsCacheTTL:  cacheTTL,
		}
	})
	return ConfigInstance
}

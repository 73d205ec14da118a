package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
	DriverMemory    = "memory"

	AuthFirebase = "firebase"
	AuthStatic   = "static"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBDriver     string `mapstructure:"DB_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	AuthDriver          string `mapstructure:"AUTH_DRIVER"`
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`
	FirebaseProjectID   string `mapstructure:"FIREBASE_PROJECT_ID"`

	// Redis configuration.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int           `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int           `mapstructure:"REDIS_QUEUE_DB"`
	AuthCacheTTL  time.Duration `mapstructure:"AUTH_CACHE_TTL"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
	RateLimitBurst    int `mapstructure:"RATE_LIMIT_BURST"`

	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	WorkerEnabled        bool `mapstructure:"WORKER_ENABLED"`
	WorkerConcurrency    int  `mapstructure:"WORKER_CONCURRENCY"`
	NotificationsEnabled bool `mapstructure:"NOTIFICATIONS_ENABLED"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverFirestore)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "studybuddy")
	v.SetDefault("AUTH_DRIVER", AuthFirebase)
	v.SetDefault("FIREBASE_CREDENTIALS", "serviceAccountKey.json")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 3)
	v.SetDefault("AUTH_CACHE_TTL", "10m")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("RATE_LIMIT_BURST", 50)
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONCURRENCY", 5)
	v.SetDefault("NOTIFICATIONS_ENABLED", true)
}

// Load reads config.yaml (from . or ./config) and the environment into a Config.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.AuthDriver = strings.ToLower(strings.TrimSpace(cfg.AuthDriver))
	return cfg, nil
}

// LoadConfig populates AppConfig from the global viper instance and exits on
// invalid configuration.
func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	AppConfig = cfg
}

// Validate rejects unknown drivers and missing credentials for the chosen ones.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverFirestore, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	switch c.AuthDriver {
	case AuthFirebase, AuthStatic:
	default:
		return fmt.Errorf("unknown AUTH_DRIVER %q", c.AuthDriver)
	}
	if c.NeedsFirebase() && c.FirebaseCredentials == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS is required when using firebase")
	}
	if c.DBDriver == DriverMongo && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for the mongo driver")
	}
	if c.AuthDriver == AuthStatic && c.IsProduction() {
		return fmt.Errorf("static auth is not allowed in production")
	}
	if c.MaxRequestsPerMin <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit settings must be positive")
	}
	return nil
}

// NeedsFirebase reports whether any configured component talks to Firebase.
func (c Config) NeedsFirebase() bool {
	return c.DBDriver == DriverFirestore || c.AuthDriver == AuthFirebase
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return AppConfig.IsProduction()
}

package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort               string `mapstructure:"APP_PORT"`
	DatabaseURL           string `mapstructure:"DATABASE_URL"`
	DatabaseName          string `mapstructure:"DATABASE_NAME"`
	Env                   string `mapstructure:"ENV"`
	JWTSecret             string `mapstructure:"JWT_SECRET"`
	WebhookVerifyToken    string `mapstructure:"WEBHOOK_VERIFY_TOKEN"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin     int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	HealthIntervalSeconds int    `mapstructure:"HEALTH_INTERVAL_SEC"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisDedupeDB        int    `mapstructure:"REDIS_DEDUPE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Booking behaviour.
	SessionTTLMinutes   int `mapstructure:"SESSION_TTL_MIN"`
	SlotDurationMinutes int `mapstructure:"SLOT_DURATION_MIN"`
	CancelNoticeHours   int `mapstructure:"CANCEL_MIN_NOTICE_HOURS"`
	DedupeWindowMinutes int `mapstructure:"DEDUPE_WINDOW_MIN"`
	ReminderOffsetHours int `mapstructure:"REMINDER_OFFSET_HOURS"`
	MaxDateOffsetDays   int `mapstructure:"MAX_DATE_OFFSET_DAYS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("HEALTH_INTERVAL_SEC", 60)
	viper.SetDefault("WEBHOOK_VERIFY_TOKEN", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_DEDUPE_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "randevio")
	viper.SetDefault("SESSION_TTL_MIN", 15)
	viper.SetDefault("SLOT_DURATION_MIN", 30)
	viper.SetDefault("CANCEL_MIN_NOTICE_HOURS", 2)
	viper.SetDefault("DEDUPE_WINDOW_MIN", 60)
	viper.SetDefault("REMINDER_OFFSET_HOURS", 2)
	viper.SetDefault("MAX_DATE_OFFSET_DAYS", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

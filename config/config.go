package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	Env               string        `mapstructure:"ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`

	// Redis holds the whole key-value namespace.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// MongoDB is only dialled when APPOINTMENT_BACKEND is "mongo".
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	DatabaseName       string `mapstructure:"DATABASE_NAME"`
	AppointmentBackend string `mapstructure:"APPOINTMENT_BACKEND"`

	// Booking flow.
	DraftTTL         time.Duration `mapstructure:"DRAFT_TTL"`
	DefaultCurrency  string        `mapstructure:"DEFAULT_CURRENCY"`
	StripeKey        string        `mapstructure:"STRIPE_KEY"`
	ChatPollInterval time.Duration `mapstructure:"CHAT_POLL_INTERVAL"`
	ReminderSchedule string        `mapstructure:"REMINDER_SCHEDULE"`
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL", "12h")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "barbershop")
	viper.SetDefault("APPOINTMENT_BACKEND", "kv")
	viper.SetDefault("DRAFT_TTL", "24h")
	viper.SetDefault("DEFAULT_CURRENCY", "BRL")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("CHAT_POLL_INTERVAL", "3s")
	viper.SetDefault("REMINDER_SCHEDULE", "@every 1m")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UseMongoAppointments reports whether appointments are persisted in MongoDB
// instead of the key-value namespace.
func UseMongoAppointments() bool {
	return AppConfig.AppointmentBackend == "mongo"
}

package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Dialogue policy. These are deliberately configuration, not constants.
	RetryLimit         int    `mapstructure:"RETRY_LIMIT"`
	BookingHorizonDays int    `mapstructure:"BOOKING_HORIZON_DAYS"`
	AdjacentDayRange   int    `mapstructure:"ADJACENT_DAY_RANGE"`
	SessionTTLMinutes  int    `mapstructure:"SESSION_TTL_MINUTES"`
	SlotDurationMin    int    `mapstructure:"SLOT_DURATION_MIN"`
	Timezone           string `mapstructure:"TIMEZONE"`
	TimezoneLabel      string `mapstructure:"TIMEZONE_LABEL"`
	BookingCodePrefix  string `mapstructure:"BOOKING_CODE_PREFIX"`

	// Intent classification.
	MinIntentConfidence float64 `mapstructure:"MIN_INTENT_CONFIDENCE"`
	GeminiAPIKey        string  `mapstructure:"GEMINI_API_KEY"`

	// Availability dataset. When set, slots are loaded from this JSON file
	// instead of the generated weekly schedule.
	CalendarDataPath string `mapstructure:"CALENDAR_DATA_PATH"`

	// Downstream sink bridges. Empty URL means the sink is skipped.
	CalendarSinkURL string `mapstructure:"CALENDAR_SINK_URL"`
	SheetSinkURL    string `mapstructure:"SHEET_SINK_URL"`
	EmailSinkURL    string `mapstructure:"EMAIL_SINK_URL"`
	AdvisorEmail    string `mapstructure:"ADVISOR_EMAIL"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("RETRY_LIMIT", 3)
	viper.SetDefault("BOOKING_HORIZON_DAYS", 14)
	viper.SetDefault("ADJACENT_DAY_RANGE", 2)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("SLOT_DURATION_MIN", 30)
	viper.SetDefault("TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("TIMEZONE_LABEL", "IST")
	viper.SetDefault("BOOKING_CODE_PREFIX", "NL")
	viper.SetDefault("MIN_INTENT_CONFIDENCE", 0.4)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("CALENDAR_DATA_PATH", "")
	viper.SetDefault("CALENDAR_SINK_URL", "")
	viper.SetDefault("SHEET_SINK_URL", "")
	viper.SetDefault("EMAIL_SINK_URL", "")
	viper.SetDefault("ADVISOR_EMAIL", "")

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

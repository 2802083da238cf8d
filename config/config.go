package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Scheduling configuration. Business hours are whole hours in the
	// shop's timezone; granularity is the slot cadence in minutes.
	BusinessStartHour   int    `mapstructure:"BUSINESS_START_HOUR"`
	BusinessEndHour     int    `mapstructure:"BUSINESS_END_HOUR"`
	SlotGranularityMin  int    `mapstructure:"SLOT_GRANULARITY_MIN"`
	DefaultServiceHours int    `mapstructure:"DEFAULT_SERVICE_HOURS"`
	ShopTimezone        string `mapstructure:"SHOP_TIMEZONE"`
	MaxShiftHours       int    `mapstructure:"MAX_SHIFT_HOURS"`
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
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_LOCK_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("BUSINESS_START_HOUR", 9)
	viper.SetDefault("BUSINESS_END_HOUR", 17)
	viper.SetDefault("SLOT_GRANULARITY_MIN", 30)
	viper.SetDefault("DEFAULT_SERVICE_HOURS", 2)
	viper.SetDefault("SHOP_TIMEZONE", "UTC")
	viper.SetDefault("MAX_SHIFT_HOURS", 16)

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

package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Export    ExportConfig
	Printer   PrinterConfig
	Remote    RemoteConfig
	Rollover  RolloverConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// StoreConfig locates the on-disk state directory.
type StoreConfig struct {
	Dir string
}

// ExportConfig locates the directory archive workbooks are written to.
type ExportConfig struct {
	Dir string
}

// PrinterConfig selects the thermal printer transport.
type PrinterConfig struct {
	Type    string // "usb", "network" or "none"
	USBPath string
	Address string
}

// RemoteConfig controls the optional replica used for cross-device
// sync. Disabled by default; the tool is fully functional offline.
type RemoteConfig struct {
	Enabled      bool
	Driver       string // "sqlite" or "postgres"
	DSN          string
	PollInterval time.Duration
}

// RolloverConfig controls the day-rollover archiver timer.
type RolloverConfig struct {
	CheckInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "salonpos-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8090")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("STORE_DIR", "./data")
	viper.SetDefault("EXPORT_DIR", "./exports")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("REMOTE_ENABLED", false)
	viper.SetDefault("REMOTE_DRIVER", "sqlite")
	viper.SetDefault("REMOTE_DSN", "./data/replica.db")
	viper.SetDefault("REMOTE_POLL_SECONDS", 30)
	viper.SetDefault("ROLLOVER_CHECK_MINUTES", 60)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Store: StoreConfig{
			Dir: viper.GetString("STORE_DIR"),
		},
		Export: ExportConfig{
			Dir: viper.GetString("EXPORT_DIR"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
		},
		Remote: RemoteConfig{
			Enabled:      viper.GetBool("REMOTE_ENABLED"),
			Driver:       viper.GetString("REMOTE_DRIVER"),
			DSN:          viper.GetString("REMOTE_DSN"),
			PollInterval: time.Duration(viper.GetInt("REMOTE_POLL_SECONDS")) * time.Second,
		},
		Rollover: RolloverConfig{
			CheckInterval: time.Duration(viper.GetInt("ROLLOVER_CHECK_MINUTES")) * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Session     SessionConfig
	Reservation ReservationConfig
	Status      StatusConfig
	CORS        CORSConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	MaxConns    int32
	AutoMigrate bool
}

type SessionConfig struct {
	ExpiryHours int
}

// ReservationConfig tunes the package-number soft lock.
type ReservationConfig struct {
	TTLMinutes          int
	MaxDraws            int
	MaxConflictRestarts int
	StrictFinalize      bool
}

type StatusConfig struct {
	ForwardOnly bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "pakket-admin")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 168)
	viper.SetDefault("RESERVATION_TTL_MINUTES", 30)
	viper.SetDefault("RESERVATION_MAX_DRAWS", 50)
	viper.SetDefault("RESERVATION_MAX_CONFLICT_RESTARTS", 5)
	viper.SetDefault("RESERVATION_STRICT_FINALIZE", false)
	viper.SetDefault("STATUS_FORWARD_ONLY", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// .env is optional, container deployments use plain environment
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Reservation: ReservationConfig{
			TTLMinutes:          viper.GetInt("RESERVATION_TTL_MINUTES"),
			MaxDraws:            viper.GetInt("RESERVATION_MAX_DRAWS"),
			MaxConflictRestarts: viper.GetInt("RESERVATION_MAX_CONFLICT_RESTARTS"),
			StrictFinalize:      viper.GetBool("RESERVATION_STRICT_FINALIZE"),
		},
		Status: StatusConfig{
			ForwardOnly: viper.GetBool("STATUS_FORWARD_ONLY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the allocator cannot work with.
func (c *Config) Validate() error {
	if c.Reservation.TTLMinutes <= 0 {
		return fmt.Errorf("invalid RESERVATION_TTL_MINUTES %d: must be positive", c.Reservation.TTLMinutes)
	}
	if c.Reservation.MaxDraws <= 0 {
		return fmt.Errorf("invalid RESERVATION_MAX_DRAWS %d: must be positive", c.Reservation.MaxDraws)
	}
	if c.Reservation.MaxConflictRestarts < 0 {
		return fmt.Errorf("invalid RESERVATION_MAX_CONFLICT_RESTARTS %d: must not be negative", c.Reservation.MaxConflictRestarts)
	}
	if c.Session.ExpiryHours <= 0 {
		return fmt.Errorf("invalid SESSION_EXPIRY_HOURS %d: must be positive", c.Session.ExpiryHours)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for DB_DRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds runtime configuration for the service.
type Config struct {
	AppPort     string
	APIBasePath string

	DBDriver      string
	DBHost        string
	DBPort        int
	DBUser        string
	DBPassword    string
	DBName        string
	DBDSN         string
	DBPoolSize    int
	DBAutoMigrate bool

	RabbitMQURL   string
	RabbitMQQueue string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":3001")
	v.SetDefault("API_BASE_PATH", "/api/products")
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "defaultdb")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_POOL_SIZE", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
}

// Load reads an optional .env file into the environment and then builds the
// configuration from environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:       v.GetString("APP_PORT"),
		APIBasePath:   v.GetString("API_BASE_PATH"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetInt("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBDSN:         v.GetString("DB_DSN"),
		DBPoolSize:    v.GetInt("DB_POOL_SIZE"),
		DBAutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		RabbitMQQueue: v.GetString("RABBITMQ_QUEUE"),
	}

	if !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}

	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DBPoolSize < 1 {
		return nil, fmt.Errorf("DB_POOL_SIZE must be at least 1, got %d", cfg.DBPoolSize)
	}
	return cfg, nil
}

// DSN returns the data source name for the configured driver. DB_DSN, when set,
// wins over the individual connection settings.
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}

	switch c.DBDriver {
	case DriverMySQL:
		// clientFoundRows makes an update that changes nothing still report
		// the matched row, so it is not mistaken for a missing product.
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&clientFoundRows=true",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case DriverPostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	case DriverSQLite:
		if c.DBName == "" {
			return "products.db"
		}
		return c.DBName
	default:
		return ""
	}
}

// EventsEnabled reports whether product events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

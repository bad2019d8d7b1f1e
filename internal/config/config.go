package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Supported media drivers.
const (
	MediaCloudinary = "cloudinary"
	MediaDisk       = "disk"
)

// Config holds every runtime setting of the dashboard.
type Config struct {
	AppPort string `mapstructure:"APP_PORT"`

	DBDriver      string `mapstructure:"DB_DRIVER"`
	DatabaseDSN   string `mapstructure:"DATABASE_DSN"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	MediaDriver      string        `mapstructure:"MEDIA_DRIVER"`
	CloudinaryURL    string        `mapstructure:"CLOUDINARY_URL"`
	MediaFolder      string        `mapstructure:"MEDIA_FOLDER"`
	UploadFolder     string        `mapstructure:"UPLOAD_FOLDER"`
	PublicDir        string        `mapstructure:"PUBLIC_DIR"`
	UploadPathPrefix string        `mapstructure:"UPLOAD_PATH_PREFIX"`
	ImageSaveTimeout time.Duration `mapstructure:"IMAGE_SAVE_TIMEOUT"`
	MaxUploadBytes   int           `mapstructure:"MAX_UPLOAD_BYTES"`

	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	RabbitMQExchange string `mapstructure:"RABBITMQ_EXCHANGE"`
}

var keys = []string{
	"APP_PORT", "DB_DRIVER", "DATABASE_DSN", "MONGO_URI", "MONGO_DATABASE",
	"MEDIA_DRIVER", "CLOUDINARY_URL", "MEDIA_FOLDER", "UPLOAD_FOLDER",
	"PUBLIC_DIR", "UPLOAD_PATH_PREFIX", "IMAGE_SAVE_TIMEOUT", "MAX_UPLOAD_BYTES",
	"RABBITMQ_URL", "RABBITMQ_EXCHANGE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "shopadmin.db")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "shopadmin")
	v.SetDefault("MEDIA_DRIVER", MediaDisk)
	v.SetDefault("CLOUDINARY_URL", "")
	v.SetDefault("MEDIA_FOLDER", "products")
	v.SetDefault("UPLOAD_FOLDER", "product")
	v.SetDefault("PUBLIC_DIR", "public")
	v.SetDefault("UPLOAD_PATH_PREFIX", "/uploads")
	v.SetDefault("IMAGE_SAVE_TIMEOUT", 15*time.Second)
	v.SetDefault("MAX_UPLOAD_BYTES", 32<<20)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "catalog")
}

// Load reads configuration from defaults, the environment and, when
// configFile is not empty, the given file. Environment variables win over
// the file.
func Load(configFile string) (*Config, error) {
	return LoadWith(viper.New(), configFile)
}

// LoadWith is Load on a caller supplied viper instance.
func LoadWith(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only applies to Get; Unmarshal needs the keys bound.
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType(strings.TrimPrefix(filepath.Ext(configFile), "."))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks driver names and the settings each driver depends on.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver %s", c.DBDriver)
		}
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DATABASE are required for driver mongo")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}

	switch c.MediaDriver {
	case MediaCloudinary:
		if c.CloudinaryURL == "" {
			return fmt.Errorf("CLOUDINARY_URL is required for media driver cloudinary")
		}
	case MediaDisk:
		if c.PublicDir == "" {
			return fmt.Errorf("PUBLIC_DIR is required for media driver disk")
		}
	default:
		return fmt.Errorf("unknown MEDIA_DRIVER %q", c.MediaDriver)
	}

	if c.ImageSaveTimeout <= 0 {
		return fmt.Errorf("IMAGE_SAVE_TIMEOUT must be positive, got %s", c.ImageSaveTimeout)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}

// EventsEnabled reports whether a broker is configured.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

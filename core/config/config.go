package config

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"

	"scene-toolkit/core/database"
	"scene-toolkit/core/fetch"
	"scene-toolkit/core/logger"
	"scene-toolkit/core/server"
	"scene-toolkit/core/storage"
	"scene-toolkit/feature/assets"
	"scene-toolkit/feature/audio"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrNoConfigFile is returned by Watch when there is no config file to watch.
var ErrNoConfigFile = errors.New("config: no config file found")

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Loader holds the asset pipeline settings.
	Loader assets.Config `mapstructure:"loader"`
	// Cache holds the fetch cache settings.
	Cache fetch.CacheConfig `mapstructure:"cache"`
	// Audio holds the mixer and output device settings.
	Audio audio.Config `mapstructure:"audio"`
}

// LoadConfig loads configuration from environment variables, a .env file and an
// optional config.yaml in path.
func LoadConfig(path string) (*Config, error) {
	_, cfg, err := load(path)
	return cfg, err
}

// Watch loads the configuration and calls onChange with the new values every
// time config.yaml in path changes. It returns the initial configuration.
func Watch(path string, onChange func(*Config, error)) (*Config, error) {
	v, cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if v.ConfigFileUsed() == "" {
		return cfg, ErrNoConfigFile
	}

	v.OnConfigChange(func(fsnotify.Event) {
		var next Config
		if err := v.Unmarshal(&next); err != nil {
			onChange(nil, err)
			return
		}
		onChange(&next, nil)
	})
	v.WatchConfig()

	return cfg, nil
}

func load(path string) (*viper.Viper, *Config, error) {
	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, err
		}
	}

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, nil, err
	}

	return v, &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}

package storage

import "time"

// Config holds configuration for the object store.
type Config struct {
	// Endpoint is the host of the storage service. An http(s) scheme is accepted.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL enables TLS. An https endpoint enables it regardless.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds the s3:// asset objects.
	Bucket string `mapstructure:"bucket" default:"scene-assets"`
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds connection setup and the first response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns TimeoutSeconds as a duration, 30s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

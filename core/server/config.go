package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// RateLimit is the sustained number of requests per second per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `mapstructure:"rate_limit" default:"0"`
	// RateBurst is the number of requests a client may send at once.
	RateBurst int `mapstructure:"rate_burst" default:"20"`
}

// Address returns the listen address for Port.
func (c Config) Address() string {
	return ":" + c.Port
}

// RateLimited reports whether requests should be rate limited.
func (c Config) RateLimited() bool {
	return c.RateLimit > 0 && c.RateBurst > 0
}

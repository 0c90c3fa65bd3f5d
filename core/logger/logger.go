package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger from cfg.
func New(cfg *Config) (*zap.Logger, error) {
	zc, err := zapConfig(cfg)
	if err != nil {
		return nil, err
	}
	return zc.Build()
}

// zapConfig maps cfg onto a zap config. The debug level uses the development
// preset; every other level starts from production.
func zapConfig(cfg *Config) (zap.Config, error) {
	zc := zap.NewProductionConfig()
	switch cfg.Level {
	case "debug":
		zc = zap.NewDevelopmentConfig()
	case "":
	default:
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return zap.Config{}, err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	if cfg.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	} else {
		zc.Encoding = "json"
	}

	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.MessageKey = "message"
	return zc, nil
}

// WithRayID returns a logger with the ray_id field set from the Fiber context.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	rid := c.Locals("ray_id")
	if str, ok := rid.(string); ok && str != "" {
		return l.With(zap.String("ray_id", str))
	}
	return l
}

// Requests logs the start and the outcome of every request. Register it after
// the ray id middleware so entries carry the request's ray_id.
func Requests(l *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rl := WithRayID(l, c)
		rl.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)

		start := time.Now()
		err := c.Next()
		if err != nil {
			rl.Error("Request error", zap.Error(err))
			return err
		}
		rl.Debug("Request finished",
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)),
		)
		return nil
	}
}

package fiberlog

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config is config for middleware
type Config struct {
	Logger *logrus.Logger
	Tags   []string

	// requests slower than SlowThreshold are logged as warnings, zero disables it
	SlowThreshold time.Duration
}

// ConfigDefault is the default config
var ConfigDefault Config = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
	SlowThreshold: 0,
}

func (c Config) isSlow(d *data) bool {
	return c.SlowThreshold > 0 && d.end.Sub(d.start) > c.SlowThreshold
}

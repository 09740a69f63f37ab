package initializers

import (
	"hirex-backend/fiberlog"
	"time"

	log "github.com/sirupsen/logrus"
)

var jsonFormatter = &log.JSONFormatter{
	FieldMap: log.FieldMap{
		log.FieldKeyTime: "@timestamp",
		log.FieldKeyMsg:  "message",
	},
}

func InitLogger() *fiberlog.Config {
	log.SetFormatter(jsonFormatter)
	log.SetLevel(log.InfoLevel)

	logger := log.New()
	logger.SetFormatter(jsonFormatter)
	logger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger: logger,
		Tags: []string{
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagUserID,
			fiberlog.RequestID,
		},
		SlowThreshold: 3 * time.Second,
	}
}

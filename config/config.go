package config

import (
	"errors"
	"os"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080" env:"APP_PORT"`

		// 5xx responses are posted to this webhook when set
		ErrNotifyURL string `default:"" env:"APP_ERR_NOTIFY_URL"`
		SwaggerOn    *bool  `default:"true" env:"APP_SWAGGER"`
		BodyLimit    int64  `default:"4194304" env:"APP_BODY_LIMIT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"hirex" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Redis struct {
		Addr     string `default:"" env:"REDIS_ADDR"`
		Password string `default:"" env:"REDIS_PASSWORD"`
		DB       int    `default:"0" env:"REDIS_DB"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		From       string `default:"hirex@localhost" env:"SMTP_FROM"`
		AppURL     string `default:"http://localhost:3000" env:"APP_URL"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"hirex" env:"S3_BUCKET_NAME"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	Workflow struct {
		CooEmail                  string `default:"" env:"COO_EMAIL"`
		CooName                   string `default:"COO" env:"COO_NAME"`
		ApprovalWaitingPeriodDays int    `default:"2" env:"APPROVAL_WAITING_PERIOD_DAYS"`
		ReminderEmailEnabled      *bool  `default:"true" env:"REMINDER_EMAIL_ENABLED"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	// .env is optional and only used in local development
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			panic(err)
		}
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	if conf.Auth.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set, every request will be rejected")
	}
	Conf = conf
}

func (c *Configuration) ReminderEnabled() bool {
	return c.Workflow.ReminderEmailEnabled == nil || *c.Workflow.ReminderEmailEnabled
}

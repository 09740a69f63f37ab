package initializers

import (
	"hirex-backend/config"
	"hirex-backend/db"
	"hirex-backend/lib/notification"
	notificationlogstore "hirex-backend/lib/notification/store"
	"hirex-backend/lib/smtp"
)

// emailSink delivers without writing to the outbox, the retry worker uses it directly.
var emailSink notification.Sink

func InitSmtp() {
	err := smtp.Connect(config.Conf.Smtp.User, config.Conf.Smtp.Password,
		config.Conf.Smtp.Host, config.Conf.Smtp.Port, *config.Conf.Smtp.TLSEnabled)
	if err != nil {
		panic(err.Error())
	}
	emailSink = notification.NewEmailSink(smtp.Instance, config.Conf.Smtp.From, config.Conf.Smtp.AppURL)
	notification.Instance = notification.NewOutboxSink(emailSink, notificationlogstore.NewInstance(db.DB))
}

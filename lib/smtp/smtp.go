package smtp

import (
	"io"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	IsConfigured() bool
	// SendMessage delivers an already composed MIME message.
	SendMessage(from string, to []string, message io.Reader) error
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	if !Instance.IsConfigured() {
		log.Warn("smtp client is not configured, email notifications will fail and stay in the outbox")
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) IsConfigured() bool {
	return i.host != "" && i.port != ""
}

func (i impl) SendMessage(from string, to []string, message io.Reader) (err error) {
	if !i.IsConfigured() {
		return errors.New("smtp client is not configured")
	}
	if len(to) == 0 {
		return errors.New("no recipients")
	}
	var auth sasl.Client
	if i.user != "" {
		auth = sasl.NewPlainClient("", i.user, i.password)
	}
	addr := i.host + ":" + i.port
	if i.tlsEnabled {
		err = smtp.SendMailTLS(addr, auth, from, to, message)
	} else {
		err = smtp.SendMail(addr, auth, from, to, message)
	}
	if err != nil {
		return errors.Wrap(err, "smtp send failed")
	}
	return nil
}

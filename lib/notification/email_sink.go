package notification

import (
	"bytes"
	"context"
	"hirex-backend/lib/smtp"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type emailSink struct {
	mailer smtp.Provider
	from   string
	appURL string
}

// NewEmailSink renders notifications to multipart emails and hands them to the smtp client.
func NewEmailSink(mailer smtp.Provider, from, appURL string) Sink {
	return &emailSink{
		mailer: mailer,
		from:   from,
		appURL: strings.TrimSuffix(appURL, "/"),
	}
}

func (s emailSink) Send(ctx context.Context, n Notification) error {
	if n.RecipientEmail == "" {
		return errors.New("recipient email is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := s.compose(n)
	if err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	if _, err = msg.WriteTo(buf); err != nil {
		return errors.Wrap(err, "failed to build email")
	}
	err = s.mailer.SendMessage(s.from, []string{n.RecipientEmail}, buf)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"rec_id": n.JobRequisitionID,
		"kind":   n.Kind,
		"to":     n.RecipientEmail,
	}).Info("notification sent")
	return nil
}

func (s emailSink) compose(n Notification) (*gomail.Message, error) {
	link := s.link(n.JobRequisitionID)
	html, err := renderHtml(n, link)
	if err != nil {
		return nil, err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", n.RecipientEmail, n.RecipientName)
	m.SetHeader("Subject", subject(n))
	m.SetBody("text/plain", renderText(n, link))
	m.AddAlternative("text/html", html)
	return m, nil
}

func (s emailSink) link(jobRequisitionID string) string {
	if s.appURL == "" || jobRequisitionID == "" {
		return ""
	}
	return s.appURL + "/job-requisitions/" + jobRequisitionID
}

func subject(n Notification) string {
	if n.JR.JrID == "" {
		return "HireX - " + n.Kind.Subject()
	}
	return "HireX - " + n.Kind.Subject() + " - " + n.JR.JrID
}

package notification

import (
	"bytes"
	"embed"
	"hirex-backend/models"
	dbmodels "hirex-backend/models/db"
	"html/template"
	"strings"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

type templateData struct {
	RecipientName string
	JR            dbmodels.NotificationContext
	Link          string
}

func getTemplate(kind models.NotificationKind) (*template.Template, error) {
	tpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+string(kind)+".html")
	if err != nil {
		return nil, errors.Wrapf(err, "template for %v not found", kind)
	}
	return tpl, nil
}

func renderHtml(n Notification, link string) (string, error) {
	tpl, err := getTemplate(n.Kind)
	if err != nil {
		return "", err
	}
	data := templateData{
		RecipientName: n.RecipientName,
		JR:            n.JR,
		Link:          link,
	}
	buf := new(bytes.Buffer)
	if err = tpl.Execute(buf, data); err != nil {
		return "", errors.Wrap(err, "template execute failed")
	}
	return buf.String(), nil
}

func renderText(n Notification, link string) string {
	var sb strings.Builder
	sb.WriteString("Dear " + n.RecipientName + ",\n\n")
	sb.WriteString(n.Kind.Subject() + "\n\n")
	sb.WriteString("JR ID: " + n.JR.JrID + "\n")
	sb.WriteString("Job title: " + n.JR.JobTitle + "\n")
	if n.JR.Status != "" {
		sb.WriteString("Status: " + n.JR.Status + "\n")
	}
	if n.JR.ApproverName != "" {
		sb.WriteString("By: " + n.JR.ApproverName + "\n")
	}
	if n.JR.Comments != "" {
		sb.WriteString("Comments: " + n.JR.Comments + "\n")
	}
	if link != "" {
		sb.WriteString("\n" + link + "\n")
	}
	return sb.String()
}

// Package mailer sends registration confirmation emails and records every
// attempt in a [datastores.EmailLogStore].
package mailer

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"

	"github.com/oaiiae/hackathon-signup/datastores"
)

const (
	Event   = "Maratona Tech Itararé"
	Subject = "Confirmação de Inscrição - " + Event
	site    = "https://maratonatechitarare.com.br"
	contact = "contato@maratonatechitarare.com.br"
)

//go:embed confirmation.html.tmpl
var confirmationText string

var confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationText))

type Message struct {
	To      string `json:"to"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// NewConfirmation renders the confirmation email for a participant.
func NewConfirmation(name, email string) (Message, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct{ Event, Name, Site, Contact string }{Event, name, site, contact})
	if err != nil {
		return Message{}, err
	}
	return Message{To: email, Name: name, Subject: Subject, HTML: buf.String()}, nil
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

// LogSender delivers nothing: it only records the message as sent.
type LogSender struct {
	Log datastores.EmailLogStore
}

func (s *LogSender) Send(ctx context.Context, m Message) error {
	return record(ctx, s.Log, m, nil)
}

func record(ctx context.Context, log datastores.EmailLogStore, m Message, sendErr error) error {
	status := datastores.EmailSent
	if sendErr != nil {
		status = datastores.EmailFailed
	}
	err := log.Append(ctx, &datastores.EmailLog{To: m.To, Name: m.Name, Subject: m.Subject, Status: status})
	if sendErr != nil {
		return sendErr
	}
	return err
}

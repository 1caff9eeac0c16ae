package signup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/VictoriaMetrics/metrics"

	"github.com/oaiiae/hackathon-signup/datastores"
	"github.com/oaiiae/hackathon-signup/mailer"
)

// Service records registrations submitted by the public form.
type Service struct {
	Store datastores.RegistrationsStore
	// Mailer sends the confirmation email; nil disables it.
	Mailer  mailer.Sender
	Rules   Rules
	Metrics *metrics.Set // optional
	Logger  *slog.Logger // optional
}

type Result struct {
	Registration *datastores.Registration
	EmailSent    bool
}

// Register validates c, appends it to the store and sends the confirmation.
// A failed confirmation does not undo the registration.
func (s *Service) Register(ctx context.Context, c Candidate) (*Result, error) {
	if err := Validate(c, s.Rules); err != nil {
		return nil, err
	}
	interest, _ := datastores.ParseInterest(c.Interest) // checked by Validate

	r := &datastores.Registration{
		Name:     strings.TrimSpace(c.Name),
		Email:    strings.TrimSpace(c.Email),
		Interest: interest,
	}
	if _, err := s.Store.Append(ctx, r); err != nil {
		return nil, err
	}
	s.inc(`registrations_created_total`)

	res := &Result{Registration: r}
	if s.Mailer == nil {
		return res, nil
	}

	msg, err := mailer.NewConfirmation(r.Name, r.Email)
	if err == nil {
		err = s.Mailer.Send(ctx, msg)
	}
	if err != nil {
		s.inc(`confirmation_emails_total{status="failed"}`)
		s.logger().LogAttrs(ctx, slog.LevelWarn, "could not send confirmation email",
			slog.String("id", r.ID.String()), slog.Any("err", err))
		return res, nil
	}
	s.inc(`confirmation_emails_total{status="sent"}`)
	res.EmailSent = true
	return res, nil
}

func (s *Service) inc(name string) {
	if s.Metrics != nil {
		s.Metrics.GetOrCreateCounter(name).Inc()
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

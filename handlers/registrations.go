package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/oaiiae/hackathon-signup/signup"
)

// Registrations is the public sign-up endpoint.
type Registrations struct {
	Service      *signup.Service
	ErrorHandler func(context.Context, error)
}

func (h *Registrations) RegisterCreate(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "",
		handlerWithErrorHandler(h.create, h.ErrorHandler),
		opStatus(http.StatusCreated),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

type RegistrationInput struct {
	Name     string `json:"name"               example:"Ana Silva"       required:"false"`
	Email    string `json:"email"              example:"ana@example.com" required:"false"`
	Interest string `json:"interest,omitempty" example:"tourism" doc:"challenge value"`
}

type RegistrationsCreateOutput struct {
	Body struct {
		ID        string    `json:"id"`
		Timestamp time.Time `json:"timestamp"`
		EmailSent bool      `json:"emailSent" doc:"whether the confirmation email went out"`
	}
}

func (h *Registrations) create(ctx context.Context, input *struct {
	Body RegistrationInput
}) (*RegistrationsCreateOutput, error) {
	res, err := h.Service.Register(ctx, signup.Candidate{
		Name:     input.Body.Name,
		Email:    input.Body.Email,
		Interest: input.Body.Interest,
	})
	if err != nil {
		return nil, validationError(err)
	}

	out := &RegistrationsCreateOutput{}
	out.Body.ID = res.Registration.ID.String()
	out.Body.Timestamp = res.Registration.Timestamp
	out.Body.EmailSent = res.EmailSent
	return out, nil
}

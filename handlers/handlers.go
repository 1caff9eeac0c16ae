package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/hackathon-signup/datastores"
	"github.com/oaiiae/hackathon-signup/signup"
)

type handler[I, O any] = func(context.Context, *I) (*O, error)

func handlerWithErrorHandler[I, O any](handler handler[I, O], do func(context.Context, error)) handler[I, O] {
	if do == nil {
		return handler
	}

	return func(ctx context.Context, i *I) (*O, error) {
		o, err := handler(ctx, i)
		if err != nil {
			do(ctx, err)
		}
		return o, err
	}
}

func opErrors(codes ...int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.Errors = codes }
}

func opStatus(code int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.DefaultStatus = code }
}

type RegistrationModel struct {
	ID string `json:"id" readOnly:"true" example:"AGCEOQ2VZV7QAOFDRNDKGNQ5YE"`

	Name      string    `json:"name"      example:"Ana Silva"`
	Email     string    `json:"email"     example:"ana@example.com"`
	Interest  string    `json:"interest"  example:"tourism" doc:"challenge value, empty when none"`
	Label     string    `json:"label"     example:"Divulgação Turística" doc:"challenge display name"`
	Timestamp time.Time `json:"timestamp"`
}

func newRegistrationModel(r *ds.Registration) RegistrationModel {
	return RegistrationModel{
		ID:        r.ID.String(),
		Name:      r.Name,
		Email:     r.Email,
		Interest:  string(r.Interest),
		Label:     r.Interest.Label(),
		Timestamp: r.Timestamp,
	}
}

func parseID(s string) (ds.RegistrationID, error) {
	id, err := ds.ParseRegistrationID(s)
	if err != nil {
		return id, huma.Error404NotFound("id not found", err)
	}
	return id, nil
}

func parseInterest(s string) (ds.Interest, error) {
	if ds.Interest(s) == ds.InterestAll {
		return ds.InterestAll, nil
	}
	i, err := ds.ParseInterest(s)
	if err != nil {
		return i, huma.Error422UnprocessableEntity("invalid interest", err)
	}
	return i, nil
}

// storeError maps store failures to HTTP errors.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ds.ErrObjectNotFound):
		return huma.Error404NotFound("id not found", err)
	default:
		return err
	}
}

// validationError maps a rejected candidate to a 422 naming the reason.
func validationError(err error) error {
	var verr *signup.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return huma.NewError(http.StatusUnprocessableEntity, verr.Message, &huma.ErrorDetail{
		Message:  verr.Reason.Error(),
		Location: "body." + verr.Field,
	})
}

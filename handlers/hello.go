package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

// Hello is the placeholder endpoint the web client pings.
type Hello struct{}

func (h *Hello) RegisterAPI(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "", h.handle)
}

// HelloOutput represents the hello operation response.
type HelloOutput struct {
	Body struct {
		Message string `json:"message" example:"Olá do backend!" doc:"Greeting message"`
	}
}

func (h *Hello) handle(_ context.Context, _ *struct{}) (*HelloOutput, error) {
	resp := &HelloOutput{}
	resp.Body.Message = "Olá do backend!"
	return resp, nil
}

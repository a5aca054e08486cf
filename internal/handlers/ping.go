package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// PingResponse is the response for the demo guarded endpoint.
type PingResponse struct {
	Body struct {
		Message string    `json:"message"`
		Time    time.Time `json:"time"`
	}
}

// Handler exposes the endpoints guarded by the rate limiter. The service
// itself is just a demonstration surface; the limiter middleware is the
// interesting part.
type Handler struct{}

// NewHandler creates a new handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Ping answers with a timestamped message when the limiter admits the
// request.
func (h *Handler) Ping(_ context.Context, _ *struct{}) (*PingResponse, error) {
	resp := &PingResponse{}
	resp.Body.Message = "pong"
	resp.Body.Time = time.Now().UTC()

	return resp, nil
}

// RegisterRoutes registers the guarded routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/ping", h.Ping)
}

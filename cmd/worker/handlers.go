package main

import (
	"github.com/hibiken/asynq"

	"microposts-backend/internal/domains/ratelimit"
	ratelimitJob "microposts-backend/internal/domains/ratelimit/job"
	"microposts-backend/internal/shared"
	"microposts-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	pruneEvents *ratelimitJob.PruneEventsHandler
}

// initializeHandlers creates all job handlers with their dependencies.
// Pruning always targets the postgres event log, whichever limiter the API
// is configured with.
func initializeHandlers(c *container.Container) (*HandlerRegistry, error) {
	pruner, err := ratelimit.NewPostgresLimiter(c.DB.Pool, ratelimit.Policy{
		Window: c.Config.Admission.Window,
		Quota:  c.Config.Admission.Quota,
	})
	if err != nil {
		return nil, err
	}

	return &HandlerRegistry{
		pruneEvents: ratelimitJob.NewPruneEventsHandler(pruner),
	}, nil
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypePruneAdmissionEvents, h.pruneEvents.ProcessTask)
}

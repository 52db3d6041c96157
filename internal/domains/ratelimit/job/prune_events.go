package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"microposts-backend/pkg/logger"
)

// PruneEventsPayload is empty; the window comes from the limiter policy
type PruneEventsPayload struct{}

// Pruner removes expired admission events
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// ================================================
// PRUNE ADMISSION EVENTS JOB HANDLER
// ================================================

type PruneEventsHandler struct {
	pruner Pruner
}

func NewPruneEventsHandler(pruner Pruner) *PruneEventsHandler {
	return &PruneEventsHandler{pruner: pruner}
}

func (h *PruneEventsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logger.Info("Starting PruneAdmissionEvents job", map[string]interface{}{
		"task_type": t.Type(),
	})

	deleted, err := h.pruner.Prune(ctx)
	if err != nil {
		return fmt.Errorf("prune admission events: %w", err)
	}

	logger.Info("Completed PruneAdmissionEvents job", map[string]interface{}{
		"deleted_count": deleted,
	})
	return nil
}

package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	ratelimitJob "microposts-backend/internal/domains/ratelimit/job"
	"microposts-backend/internal/shared"
	"microposts-backend/pkg/logger"
)

type Scheduler struct {
	scheduler     *asynq.Scheduler
	pruneSchedule string
}

func NewScheduler(redisOpt asynq.RedisClientOpt, pruneSchedule string) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:     scheduler,
		pruneSchedule: pruneSchedule,
	}
}

func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerPruneAdmissionEventsJob()
}

// ================================================
// JOB: Prune admission events (WORKER_PRUNE_SCHEDULE, default every 5 minutes)
// ================================================
// Only the postgres limiter writes post_write_events; on other backends
// the job deletes nothing.
func (s *Scheduler) registerPruneAdmissionEventsJob() error {
	payload, err := json.Marshal(ratelimitJob.PruneEventsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePruneAdmissionEvents, payload)

	_, err = s.scheduler.Register(
		s.pruneSchedule,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(time.Minute),
		asynq.Unique(time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register PruneAdmissionEvents job", err)
		return err
	}

	logger.Info("Registered PruneAdmissionEvents", map[string]interface{}{
		"schedule": s.pruneSchedule,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

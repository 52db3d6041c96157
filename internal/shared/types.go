package shared

// Background task types
const (
	TypePruneAdmissionEvents = "admission:prune_events"
)

// Queues
const (
	QueueDefault     = "default"
	QueueMaintenance = "maintenance"
)

// Gin context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

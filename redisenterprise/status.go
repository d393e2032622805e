package redisenterprise

import "github.com/redis-developer/redisctl-go/lro"

// Status maps a status reported by the cluster onto the poller's statuses. Unrecognized values are returned
// normalized and are non-terminal.
func Status(raw string) lro.Status {
	switch s := lro.Normalize(raw); s {
	case "queued", "pending", "initialized", "received":
		return lro.StatusPending
	case "running", "started", "in_progress", "in-progress", "processing", "active":
		return lro.StatusInProgress
	case "completed", "complete", "done", "finished", "succeeded", "success":
		return lro.StatusCompleted
	case "failed", "error":
		return lro.StatusFailed
	case "cancelled", "canceled", "aborted":
		return lro.StatusCanceled
	default:
		return s
	}
}

package dto

// Probe statuses reported by the status service.
const (
	StatusOK    = "ok"
	StatusReady = "ready"
)

// StatusResponse is the body of the liveness and readiness probes.
type StatusResponse struct {
	Status string `json:"status"`
}

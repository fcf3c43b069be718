package model

type NotificationType string

const (
	NotifyFlightCompleted      NotificationType = "flight_completed"
	NotifyDelayStarted         NotificationType = "delay_started"
	NotifyDelayCleared         NotificationType = "delay_cleared"
	NotifyCrash                NotificationType = "crash"
	NotifyMaintenanceCompleted NotificationType = "maintenance_completed"
)

// Notification is a discrete state-change event produced by a tick, consumed
// by the presentation layer (WS push) and the public event feed. It is not
// required for correctness of the snapshot itself.
type Notification struct {
	Type         NotificationType `json:"type"`
	AircraftID   string           `json:"aircraft_id"`
	Registration string           `json:"registration"`
	Model        string           `json:"model,omitempty"`
	Message      string           `json:"message"`
	Reason       string           `json:"reason,omitempty"`
	Revenue      float64          `json:"revenue,omitempty"`
	Location     string           `json:"location,omitempty"`
}

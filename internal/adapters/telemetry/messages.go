package telemetry

import "time"

// MsgPlan carries the headline and the planned task labels.
type MsgPlan struct {
	Title string
	Tasks []string
}

// MsgTaskStart indicates a task span has started.
type MsgTaskStart struct {
	SpanID    string
	Name      string
	StartTime time.Time
}

// MsgTaskComplete indicates a task span has finished.
type MsgTaskComplete struct {
	SpanID  string
	EndTime time.Time
	Summary string
	Err     error
}

package analytics

import "time"

// TopicRequestDenied is the topic deny events are published on.
const TopicRequestDenied = "ratelimit.denied"

// RequestDeniedEvent is emitted when the limiter denies a request.
type RequestDeniedEvent struct {
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	UserAgent  string    `json:"userAgent,omitempty"`
	DeniedAt   time.Time `json:"deniedAt"`
}

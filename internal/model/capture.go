package model

import "time"

// CaptureRecord is one normalized inbound request. Created exactly once at
// receipt and immutable afterwards.
type CaptureRecord struct {
	EndpointID  string            `json:"endpointId"`
	Method      string            `json:"method"`
	Headers     map[string]string `json:"headers"`
	Query       map[string]string `json:"query"`
	Body        any               `json:"body"`
	ContentType string            `json:"contentType"`
	Size        int               `json:"size"`
	IP          string            `json:"ip"`
	Timestamp   time.Time         `json:"timestamp"`
}

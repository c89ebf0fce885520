package types

import "time"

// LogEntry is a request/response pair queued for the request log table
type LogEntry struct {
	Method          string
	URL             string
	ClientIP        string
	Admin           string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	CreatedAt       time.Time
}

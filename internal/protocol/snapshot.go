package protocol

import "time"

// ExecutionRecord is one stored evaluation. Duration is in seconds.
type ExecutionRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Commands  int       `json:"commands"`
	Result    int       `json:"result"`
	Duration  float64   `json:"duration"`
}

type ExecutionList struct {
	Executions []ExecutionRecord `json:"executions"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

package protocol

const (
	EventExecutionRecorded = "ExecutionRecorded"
	EventHello             = "Hello"
)

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

type Hello struct {
	RecentExecutions []ExecutionRecord `json:"recentExecutions"`
}

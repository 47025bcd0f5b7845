package worker

// Log messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"
)

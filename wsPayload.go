package main

type WsBaseMessage struct {
	Type string `json:"type"`
}

// WsFrameProgress is broadcast once per synthesized frame.
type WsFrameProgress struct {
	WsBaseMessage
	WorkerID   int   `json:"workerId"`
	JobID      int64 `json:"jobId"`
	Pair       int   `json:"pair"`
	TotalPairs int   `json:"totalPairs"`
	ElapsedMs  int64 `json:"elapsedMs"`
}

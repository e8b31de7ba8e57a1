package journal

import "time"

// Entry is one dispatched message's record: what command it carried and
// how the handler resolved it.
type Entry struct {
	MessageID   string
	Intent      string
	Outcome     string
	Detail      string
	ProcessedAt time.Time
}

// Recorder is the journal surface the run loop and the API depend on.
// Seen guards against reprocessing a message whose gateway labeling
// failed after a successful handler run.
type Recorder interface {
	Seen(messageID string) (bool, error)
	Record(entry Entry) error
	OutcomeCounts() (map[string]int, error)
}

package crawl

// ProgressEvent reports progress during a download or capture pass.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Bytes     int64
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

// outcome classifies how a single URL ended.
type outcome int

const (
	outcomeSaved outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (o outcome) progressType() ProgressType {
	switch o {
	case outcomeSaved:
		return ProgressCompleted
	case outcomeSkipped:
		return ProgressSkipped
	default:
		return ProgressFailed
	}
}

package driver

import "time"

// Stage of a batch run.
type Stage string

const (
	StageLoad   Stage = "load"
	StageParse  Stage = "parse"
	StageBlocks Stage = "blocks"
	StageCache  Stage = "cache"
)

// Status within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for File, or for the whole run when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. It is called from worker
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChanSink forwards events to a channel.
type ChanSink chan<- Event

func (c ChanSink) OnEvent(ev Event) { c <- ev }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

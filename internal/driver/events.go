package driver

import "time"

// Stage is the scan step a progress event refers to.
type Stage string

const (
	StageLoad    Stage = "load"
	StageExtract Stage = "extract"
	StageCheck   Stage = "check"
	StageGlobal  Stage = "global"
)

// Status is the state of a file (or of the whole run when Event.File is empty).
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the run when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Records int
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use when the scan runs with more than one job.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

// Sinks fans every event out to each sink in order.
type Sinks []ProgressSink

func (s Sinks) OnEvent(evt Event) {
	for _, sink := range s {
		emit(sink, evt)
	}
}

package driver

// Stage identifies one phase of the per-file analysis pipeline.
type Stage uint8

const (
	StageLoad Stage = iota
	StageParse
	StageSymbols
	StageResolve
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "loading"
	case StageParse:
		return "parsing"
	case StageSymbols:
		return "building symbols"
	case StageResolve:
		return "resolving"
	default:
		return "unknown"
	}
}

// Status reports how a file is doing in its current stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
	// StatusCached means the file's analysis summary came from the disk
	// cache and no pipeline stage ran.
	StatusCached
)

// Event is one progress notification. An empty Path addresses the run as a
// whole rather than a single file.
type Event struct {
	Path   string
	Stage  Stage
	Status Status
}

// Sink receives progress events. A nil Sink is silently ignored.
type Sink func(Event)

// ChannelSink adapts a channel into a Sink.
func ChannelSink(ch chan<- Event) Sink {
	return func(ev Event) { ch <- ev }
}

func (s Sink) emit(ev Event) {
	if s != nil {
		s(ev)
	}
}

package event

// Sink receives structured notifications from the engine. Implementations
// must not call back into the state machine from Emit.
type Sink interface {
	Emit(evt Event)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// Multi fans a notification out to several sinks in order.
type Multi []Sink

func (m Multi) Emit(evt Event) {
	for _, s := range m {
		s.Emit(evt)
	}
}

// Collector buffers events in memory, for tests and for UI log panes.
type Collector struct {
	Events []Event
}

func (c *Collector) Emit(evt Event) {
	c.Events = append(c.Events, evt)
}

// OfType returns the collected events carrying the given tag.
func (c *Collector) OfType(t Type) []Event {
	var out []Event
	for _, e := range c.Events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

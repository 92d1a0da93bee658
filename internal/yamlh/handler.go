package yamlh

// EventHandler consumes the structural events of one document at a time.
// The parser calls OnDocumentStart, then the events of exactly one root
// node, then OnDocumentEnd. Returning an error aborts the document.
type EventHandler interface {
	OnDocumentStart(mark Mark) error
	OnDocumentEnd() error

	OnNull(mark Mark, anchor string) error
	OnAlias(mark Mark, anchor string) error
	OnScalar(mark Mark, tag, anchor string, style ScalarStyle, value string) error

	OnSequenceStart(mark Mark, tag, anchor string, style CollectionStyle) error
	OnSequenceEnd() error

	OnMapStart(mark Mark, tag, anchor string, style CollectionStyle) error
	OnMapEnd() error
}

// EventRecorder is an EventHandler that keeps every event it receives.
type EventRecorder struct {
	Events []Event
}

var _ EventHandler = (*EventRecorder)(nil)

func (r *EventRecorder) add(ev Event) error {
	r.Events = append(r.Events, ev)
	return nil
}

func (r *EventRecorder) OnDocumentStart(mark Mark) error {
	return r.add(Event{Type: DOCUMENT_START_EVENT, Mark: mark})
}

func (r *EventRecorder) OnDocumentEnd() error {
	return r.add(Event{Type: DOCUMENT_END_EVENT})
}

func (r *EventRecorder) OnNull(mark Mark, anchor string) error {
	return r.add(Event{Type: NULL_EVENT, Mark: mark, Anchor: anchor})
}

func (r *EventRecorder) OnAlias(mark Mark, anchor string) error {
	return r.add(Event{Type: ALIAS_EVENT, Mark: mark, Anchor: anchor})
}

func (r *EventRecorder) OnScalar(mark Mark, tag, anchor string, style ScalarStyle, value string) error {
	return r.add(Event{
		Type:        SCALAR_EVENT,
		Mark:        mark,
		Anchor:      anchor,
		Tag:         tag,
		Value:       value,
		ScalarStyle: style,
	})
}

func (r *EventRecorder) OnSequenceStart(mark Mark, tag, anchor string, style CollectionStyle) error {
	return r.add(Event{
		Type:            SEQUENCE_START_EVENT,
		Mark:            mark,
		Anchor:          anchor,
		Tag:             tag,
		CollectionStyle: style,
	})
}

func (r *EventRecorder) OnSequenceEnd() error {
	return r.add(Event{Type: SEQUENCE_END_EVENT})
}

func (r *EventRecorder) OnMapStart(mark Mark, tag, anchor string, style CollectionStyle) error {
	return r.add(Event{
		Type:            MAPPING_START_EVENT,
		Mark:            mark,
		Anchor:          anchor,
		Tag:             tag,
		CollectionStyle: style,
	})
}

func (r *EventRecorder) OnMapEnd() error {
	return r.add(Event{Type: MAPPING_END_EVENT})
}

// Types returns the recorded event types in order.
func (r *EventRecorder) Types() []EventType {
	types := make([]EventType, len(r.Events))
	for i, ev := range r.Events {
		types[i] = ev.Type
	}
	return types
}

// Replay sends the recorded events to h.
func (r *EventRecorder) Replay(h EventHandler) error {
	for _, ev := range r.Events {
		var err error
		switch ev.Type {
		case DOCUMENT_START_EVENT:
			err = h.OnDocumentStart(ev.Mark)
		case DOCUMENT_END_EVENT:
			err = h.OnDocumentEnd()
		case NULL_EVENT:
			err = h.OnNull(ev.Mark, ev.Anchor)
		case ALIAS_EVENT:
			err = h.OnAlias(ev.Mark, ev.Anchor)
		case SCALAR_EVENT:
			err = h.OnScalar(ev.Mark, ev.Tag, ev.Anchor, ev.ScalarStyle, ev.Value)
		case SEQUENCE_START_EVENT:
			err = h.OnSequenceStart(ev.Mark, ev.Tag, ev.Anchor, ev.CollectionStyle)
		case SEQUENCE_END_EVENT:
			err = h.OnSequenceEnd()
		case MAPPING_START_EVENT:
			err = h.OnMapStart(ev.Mark, ev.Tag, ev.Anchor, ev.CollectionStyle)
		case MAPPING_END_EVENT:
			err = h.OnMapEnd()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

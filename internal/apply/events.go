package apply

import (
	"github.com/jonathan/easy-apply/internal/types"
)

// EventKind names an engine event
type EventKind string

// Engine events
const (
	EventJobStarted      EventKind = "job_started"
	EventStateDetected   EventKind = "state_detected"
	EventFieldResolved   EventKind = "field_resolved"
	EventFieldUnresolved EventKind = "field_unresolved"
	EventViolation       EventKind = "violation"
	EventButtonClicked   EventKind = "button_clicked"
	EventJobFinished     EventKind = "job_finished"
)

// Event is one step of a job as seen by the engine
type Event struct {
	Kind           EventKind
	JobID          string
	State          types.ApplicationState
	Reason         string
	Details        string
	FieldType      string
	Question       string
	Options        []string
	Classification string
	Confidence     types.Confidence
	MatchedKey     string
	Value          string
	// Result is set on EventJobFinished
	Result *types.JobResult
}

// EventCallback is called for every engine event
type EventCallback func(event Event)

// Fanout combines callbacks; nil entries are ignored
func Fanout(callbacks ...EventCallback) EventCallback {
	var active []EventCallback
	for _, cb := range callbacks {
		if cb != nil {
			active = append(active, cb)
		}
	}
	return func(event Event) {
		for _, cb := range active {
			cb(event)
		}
	}
}

func fieldEvent(kind EventKind, field *types.FieldContext) Event {
	return Event{
		Kind:           kind,
		FieldType:      field.Type,
		Question:       field.Question,
		Options:        field.Options,
		Classification: field.Classification,
		Confidence:     field.Confidence,
		MatchedKey:     field.MatchedKey,
	}
}

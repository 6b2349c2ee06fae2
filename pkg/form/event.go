package form

import "sync/atomic"

// Event is a form submission as seen by the component.
type Event interface {
	// PreventDefault suppresses the host's default submission handling
	// (a full page navigation in a browser).
	PreventDefault()
	// FormValue returns the current value of a form field, "" if absent.
	FormValue(field string) string
}

// SubmitEvent is an Event built from a snapshot of field values.
type SubmitEvent struct {
	values    map[string]string
	prevented atomic.Bool
}

// NewSubmitEvent returns an event carrying a copy of values.
func NewSubmitEvent(values map[string]string) *SubmitEvent {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &SubmitEvent{values: copied}
}

// NameEvent returns an event whose name field is name.
func NameEvent(name string) *SubmitEvent {
	return NewSubmitEvent(map[string]string{FieldName: name})
}

// PreventDefault implements Event.
func (e *SubmitEvent) PreventDefault() {
	e.prevented.Store(true)
}

// FormValue implements Event.
func (e *SubmitEvent) FormValue(field string) string {
	return e.values[field]
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *SubmitEvent) DefaultPrevented() bool {
	return e.prevented.Load()
}

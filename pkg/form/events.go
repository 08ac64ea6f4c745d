package form

// EventType names the mutation that produced an Event.
type EventType string

const (
	EventFieldChanged   EventType = "field-changed"
	EventFieldValidated EventType = "field-validated"
	EventValidated      EventType = "validated"
	EventSubmitted      EventType = "submitted"
	EventSubmitFailed   EventType = "submit-failed"
	EventReset          EventType = "reset"
)

// Event is delivered to subscribers after the form state has been updated.
// Field and State are set for field-level events only.
type Event struct {
	Type   EventType
	Field  string
	State  FieldState
	Valid  bool
	Status Status
}

// Listener receives form events. Listeners run synchronously on the caller's
// goroutine and must not mutate the form they observe.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers fn and returns a function that removes it. Listeners
// are called in registration order.
func (f *Form) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	f.nextSubID++
	id := f.nextSubID
	f.listeners = append(f.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range f.listeners {
			if sub.id == id {
				f.listeners = append(f.listeners[:i:i], f.listeners[i+1:]...)
				return
			}
		}
	}
}

func (f *Form) emit(evt Event) {
	if len(f.listeners) == 0 {
		return
	}
	evt.Valid = f.IsValid()
	evt.Status = f.status
	listeners := append([]subscription(nil), f.listeners...)
	for _, sub := range listeners {
		sub.fn(evt)
	}
}

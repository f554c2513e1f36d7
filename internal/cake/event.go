package cake

import (
	"encoding/json"
	"fmt"
)

// EventState is the lifecycle stage of an EventPayload.
type EventState int

const (
	EventNew EventState = iota + 1
	EventInProcess
	EventSuccess
	EventFail
)

var eventStateNames = map[EventState]string{
	EventNew:       "NEW",
	EventInProcess: "IN_PROCESS",
	EventSuccess:   "SUCCESS",
	EventFail:      "FAIL",
}

func (s EventState) String() string {
	if n, ok := eventStateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("EventState(%d)", int(s))
}

// MarshalJSON renders the state by name, matching the source system's
// string-keyed enum serialization.
func (s EventState) MarshalJSON() ([]byte, error) {
	n, ok := eventStateNames[s]
	if !ok {
		return nil, fmt.Errorf("cake: invalid event state %d", int(s))
	}
	return json.Marshal(n)
}

// UnmarshalJSON accepts either the state's name or its numeric code.
func (s *EventState) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		for k, v := range eventStateNames {
			if v == name {
				*s = k
				return nil
			}
		}
		return fmt.Errorf("cake: unknown event state %q", name)
	}
	var code int
	if err := json.Unmarshal(b, &code); err != nil {
		return err
	}
	if _, ok := eventStateNames[EventState(code)]; !ok {
		return fmt.Errorf("cake: unknown event state code %d", code)
	}
	*s = EventState(code)
	return nil
}

// EventPayload is the structured value an EVENT Cake hash-addresses: a work
// item's state plus its input/output data and optional provenance. Named
// EventPayload (not Event) to avoid colliding with the Event CakeType
// constant.
type EventPayload struct {
	State          EventState     `json:"state"`
	Input          map[string]any `json:"input"`
	Output         map[string]any `json:"output"`
	Codebase       *string        `json:"codebase"`
	AdditionalData *string        `json:"additional_data"`
}

// NewEventPayload returns a freshly-created payload in the NEW state with
// empty input/output maps, matching the source system's default
// construction.
func NewEventPayload() EventPayload {
	return EventPayload{
		State:  EventNew,
		Input:  map[string]any{},
		Output: map[string]any{},
	}
}

// Bytes renders the canonical JSON form of the payload, used to compute the
// digest an EVENT Cake carries.
func (e EventPayload) Bytes() ([]byte, error) {
	return json.Marshal(e)
}

// EventCake wraps an EventPayload as an EVENT Cake, digesting its canonical
// JSON encoding.
func EventCake(e EventPayload, role Role) (Cake, error) {
	b, err := e.Bytes()
	if err != nil {
		return Cake{}, fmt.Errorf("cake: event bytes: %w", err)
	}
	return New(Event, role, SumSHA256(b))
}

// JSONWrapCake wraps arbitrary JSON-serializable data as a JSON_WRAP Cake,
// digesting its canonical JSON encoding.
func JSONWrapCake(v any, role Role) (Cake, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Cake{}, fmt.Errorf("cake: json wrap bytes: %w", err)
	}
	return New(JSONWrap, role, SumSHA256(b))
}

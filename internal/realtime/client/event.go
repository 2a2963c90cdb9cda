package client

import "encoding/json"

// Event is a decoded server envelope. Raw holds the complete frame so
// consumers can extract the resource payload field for their type.
type Event struct {
	Type   string
	Action string
	Raw    json.RawMessage
}

func decodeEvent(data []byte) (Event, error) {
	var head struct {
		Type  string `json:"type"`
		Event string `json:"event"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Event{}, err
	}
	return Event{Type: head.Type, Action: head.Event, Raw: data}, nil
}

// Payload unmarshals the named top-level field of the frame into v.
// Returns false when the field is absent.
func (e Event) Payload(field string, v any) (bool, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Raw, &fields); err != nil {
		return false, err
	}
	raw, ok := fields[field]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

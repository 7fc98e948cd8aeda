package record

import (
	"encoding/json"
	"fmt"
)

// PayloadKind discriminates the value variants a field can hold.
type PayloadKind string

const (
	KindText    PayloadKind = "text"
	KindBoolean PayloadKind = "boolean"
	KindNumber  PayloadKind = "number"
	KindMap     PayloadKind = "map"
)

// Payload is the tagged value union stored in record and metadata fields.
// Maps nest payloads recursively; cycles are impossible because maps are
// built bottom-up from values.
type Payload struct {
	Kind    PayloadKind
	Text    string
	Boolean bool
	Number  int64
	Map     map[string]Payload
}

// TextPayload wraps a string value.
func TextPayload(s string) Payload { return Payload{Kind: KindText, Text: s} }

// BooleanPayload wraps a boolean value.
func BooleanPayload(b bool) Payload { return Payload{Kind: KindBoolean, Boolean: b} }

// NumberPayload wraps an integer value.
func NumberPayload(n int64) Payload { return Payload{Kind: KindNumber, Number: n} }

// MapPayload wraps a nested payload tree.
func MapPayload(m map[string]Payload) Payload { return Payload{Kind: KindMap, Map: m} }

// Equal reports structural equality across the whole payload tree.
func (p Payload) Equal(other Payload) bool {
	if p.Kind != other.Kind {
		return false
	}
	switch p.Kind {
	case KindText:
		return p.Text == other.Text
	case KindBoolean:
		return p.Boolean == other.Boolean
	case KindNumber:
		return p.Number == other.Number
	case KindMap:
		if len(p.Map) != len(other.Map) {
			return false
		}
		for k, v := range p.Map {
			ov, ok := other.Map[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

type payloadWire struct {
	Type  PayloadKind     `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the payload as a {type, value} pair.
func (p Payload) MarshalJSON() ([]byte, error) {
	var value any
	switch p.Kind {
	case KindText:
		value = p.Text
	case KindBoolean:
		value = p.Boolean
	case KindNumber:
		value = p.Number
	case KindMap:
		if p.Map == nil {
			value = map[string]Payload{}
		} else {
			value = p.Map
		}
	default:
		return nil, fmt.Errorf("unknown payload kind %q", p.Kind)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(payloadWire{Type: p.Kind, Value: raw})
}

// UnmarshalJSON reverses MarshalJSON.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var wire payloadWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*p = Payload{Kind: wire.Type}
	switch wire.Type {
	case KindText:
		return json.Unmarshal(wire.Value, &p.Text)
	case KindBoolean:
		return json.Unmarshal(wire.Value, &p.Boolean)
	case KindNumber:
		return json.Unmarshal(wire.Value, &p.Number)
	case KindMap:
		return json.Unmarshal(wire.Value, &p.Map)
	}
	return fmt.Errorf("unknown payload kind %q", wire.Type)
}

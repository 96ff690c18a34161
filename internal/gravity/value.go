package gravity

import (
	"bytes"
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Value is an opaque client-supplied value. The engine never interprets it;
// it is echoed back byte-for-byte in results.
type Value struct {
	raw json.RawMessage
}

// StringValue wraps s as a JSON string.
func StringValue(s string) Value {
	b, _ := json.Marshal(s)
	return Value{raw: b}
}

// NumberValue wraps f as a JSON number.
func NumberValue(f float64) Value {
	return Value{raw: []byte(strconv.FormatFloat(f, 'g', -1, 64))}
}

// IsZero reports whether v was never set.
func (v Value) IsZero() bool { return len(v.raw) == 0 }

// IsNull reports whether v holds a JSON null.
func (v Value) IsNull() bool { return string(v.raw) == "null" }

// Float64 returns the value as a number if it holds one.
func (v Value) Float64() (float64, bool) {
	var f float64
	if v.IsZero() || v.IsNull() || json.Unmarshal(v.raw, &f) != nil {
		return 0, false
	}
	return f, true
}

// String returns a JSON string unquoted, anything else as its raw text.
func (v Value) String() string {
	var s string
	if len(v.raw) > 0 && v.raw[0] == '"' && json.Unmarshal(v.raw, &s) == nil {
		return s
	}
	return string(v.raw)
}

// Equal reports whether both values carry the same raw encoding.
func (v Value) Equal(o Value) bool {
	return bytes.Equal(v.raw, o.raw)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsZero() {
		return []byte("null"), nil
	}
	return v.raw, nil
}

func (v *Value) UnmarshalJSON(b []byte) error {
	v.raw = append(v.raw[:0], b...)
	return nil
}

func (v Value) MarshalYAML() (interface{}, error) {
	if v.IsZero() {
		return nil, nil
	}
	var out interface{}
	if err := json.Unmarshal(v.raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var decoded interface{}
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	b, err := json.Marshal(decoded)
	if err != nil {
		return err
	}
	v.raw = b
	return nil
}

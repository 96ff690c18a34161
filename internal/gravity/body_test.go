package gravity

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDecodeSpecsJSON(t *testing.T) {
	data := `[
		{"mass": 10, "x": -50, "y": 0, "vx": 0, "vy": 7.07, "tone": 261.63, "id": "Тело 1"},
		{"mass": 10, "x": 50, "y": 0, "vx": 0, "vy": -7.07, "tone": 329.63, "id": 2}
	]`

	var raw []RawSpec
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	specs, err := DecodeSpecs(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].ID.String() != "Тело 1" {
		t.Errorf("id = %q", specs[0].ID.String())
	}
	if f, ok := specs[1].Tone.Float64(); !ok || f != 329.63 {
		t.Errorf("tone = %v (%v)", f, ok)
	}
	if specs[1].ID.String() != "2" {
		t.Errorf("numeric id = %q", specs[1].ID.String())
	}
}

func TestDecodeSpecsMissingField(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"no mass", `{"x":0,"y":0,"vx":0,"vy":0,"tone":1,"id":"a"}`, "mass"},
		{"no vy", `{"mass":1,"x":0,"y":0,"vx":0,"tone":1,"id":"a"}`, "vy"},
		{"null x", `{"mass":1,"x":null,"y":0,"vx":0,"vy":0,"tone":1,"id":"a"}`, "x"},
		{"no tone", `{"mass":1,"x":0,"y":0,"vx":0,"vy":0,"id":"a"}`, "tone"},
		{"no id", `{"mass":1,"x":0,"y":0,"vx":0,"vy":0,"tone":1}`, "id"},
	}

	good := `{"mass":1,"x":0,"y":0,"vx":0,"vy":0,"tone":1,"id":"ok"}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw []RawSpec
			if err := json.Unmarshal([]byte("["+good+","+tt.data+"]"), &raw); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			specs, err := DecodeSpecs(raw)
			if specs != nil {
				t.Error("expected no specs on failure")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Index != 1 || ve.Field != tt.field {
				t.Errorf("got index %d field %q, want 1 %q", ve.Index, ve.Field, tt.field)
			}
		})
	}
}

func TestDecodeSpecsNullOpaque(t *testing.T) {
	data := `[{"mass":1,"x":0,"y":0,"vx":0,"vy":0,"tone":null,"id":null}]`

	var raw []RawSpec
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	specs, err := DecodeSpecs(raw)
	if err != nil {
		t.Fatalf("expected null tone and id to be accepted, got %v", err)
	}
	if !specs[0].Tone.IsNull() || !specs[0].ID.IsNull() {
		t.Errorf("expected null values, got tone=%s id=%s", specs[0].Tone, specs[0].ID)
	}
	if _, ok := specs[0].Tone.Float64(); ok {
		t.Error("null tone must not read as a number")
	}

	st := NewState()
	res, err := st.Step(specs, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(res[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"tone":null`) || !strings.Contains(string(out), `"id":null`) {
		t.Errorf("expected nulls echoed, got %s", out)
	}
}

func TestDecodeSpecsYAML(t *testing.T) {
	data := `
- mass: 1000
  x: 0
  y: 0
  vx: 0
  vy: 0
  tone: 130.81
  id: Sun
- mass: 1
  x: 100
  y: 0
  vx: 0
  vy: 100
  tone: {note: E4}
  id: 3
`
	var raw []RawSpec
	if err := yaml.Unmarshal([]byte(data), &raw); err != nil {
		t.Fatalf("yaml unmarshal failed: %v", err)
	}
	specs, err := DecodeSpecs(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if specs[0].ID.String() != "Sun" {
		t.Errorf("id = %q", specs[0].ID.String())
	}
	if specs[1].Tone.String() != `{"note":"E4"}` {
		t.Errorf("tone = %s", specs[1].Tone.String())
	}
}

func TestRawFromSpecRoundTrip(t *testing.T) {
	s := Spec{Mass: 2, X: 1, Y: -1, VX: 0.5, VY: 0, Tone: NumberValue(440), ID: StringValue("a")}
	back, err := RawFromSpec(s).Validate()
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if back.Mass != s.Mass || back.X != s.X || !back.ID.Equal(s.ID) || !back.Tone.Equal(s.Tone) {
		t.Errorf("round trip mismatch: %+v vs %+v", back, s)
	}
}

func TestResultJSONShape(t *testing.T) {
	r := Body{ID: StringValue("a"), Mass: 1, Tone: NumberValue(261.63)}.Result()
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"x":0,"y":0,"vx":0,"vy":0,"tone":261.63,"mass":1,"id":"a"}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestValueViews(t *testing.T) {
	tests := []struct {
		v     Value
		str   string
		num   float64
		numOK bool
	}{
		{StringValue("Earth"), "Earth", 0, false},
		{NumberValue(440), "440", 440, true},
		{RawValueForTest(`true`), "true", 0, false},
		{Value{}, "", 0, false},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		f, ok := tt.v.Float64()
		if ok != tt.numOK || f != tt.num {
			t.Errorf("Float64() = %v,%v want %v,%v", f, ok, tt.num, tt.numOK)
		}
	}
}

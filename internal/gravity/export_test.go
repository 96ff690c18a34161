package gravity

// RawValueForTest builds a Value from literal JSON.
func RawValueForTest(s string) Value {
	return Value{raw: []byte(s)}
}

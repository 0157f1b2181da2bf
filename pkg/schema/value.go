package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Value is the payload a field carries: free text or a boolean flag. The zero
// Value is the empty string. Values marshal as their underlying JSON type so
// stored schemas keep the plain string/bool shape.
type Value struct {
	isBool bool
	flag   bool
	text   string
}

// String wraps a text payload.
func String(text string) Value {
	return Value{text: text}
}

// Bool wraps a boolean payload.
func Bool(flag bool) Value {
	return Value{isBool: true, flag: flag}
}

// ValueOf converts loosely typed input (decoded JSON, CLI flags) into a Value.
// Numbers keep their textual form; anything else is formatted with %v.
func ValueOf(input any) Value {
	switch value := input.(type) {
	case nil:
		return Value{}
	case Value:
		return value
	case string:
		return String(value)
	case bool:
		return Bool(value)
	case int:
		return String(strconv.Itoa(value))
	case int64:
		return String(strconv.FormatInt(value, 10))
	case float64:
		return String(strconv.FormatFloat(value, 'f', -1, 64))
	case json.Number:
		return String(value.String())
	default:
		return String(fmt.Sprintf("%v", input))
	}
}

// IsBool reports whether the value carries a boolean payload.
func (v Value) IsBool() bool {
	return v.isBool
}

// Bool returns the boolean payload; false for text values.
func (v Value) Bool() bool {
	return v.isBool && v.flag
}

// Text returns the text payload; empty for boolean values.
func (v Value) Text() string {
	if v.isBool {
		return ""
	}
	return v.text
}

// String renders the payload: the text itself, or "true"/"false" for flags.
func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.flag)
	}
	return v.text
}

// IsZero reports whether the value is empty text or a false flag. Seeding and
// default fallbacks treat both as absent.
func (v Value) IsZero() bool {
	if v.isBool {
		return !v.flag
	}
	return v.text == ""
}

// Truthy interprets the value as a visibility toggle: booleans as themselves,
// the usual affirmative strings (true/1/yes/y) as true, numeric text by
// non-zero comparison, everything else as false.
func (v Value) Truthy() bool {
	if v.isBool {
		return v.flag
	}
	trimmed := strings.ToLower(strings.TrimSpace(v.text))
	switch trimmed {
	case "true", "1", "yes", "y":
		return true
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return n != 0
	}
	return false
}

// Equal reports payload equality, used by cmp.Diff in tests.
func (v Value) Equal(other Value) bool {
	return v == other
}

// MarshalJSON emits the underlying string or boolean.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isBool {
		return json.Marshal(v.flag)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts strings, booleans, numbers (kept as text), and null.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("schema: decode value: %w", err)
		}
		*v = String(text)
	case 't', 'f':
		var flag bool
		if err := json.Unmarshal(trimmed, &flag); err != nil {
			return fmt.Errorf("schema: decode value: %w", err)
		}
		*v = Bool(flag)
	case '{', '[':
		return fmt.Errorf("schema: value must be a string, boolean, or number")
	default:
		var number json.Number
		if err := json.Unmarshal(trimmed, &number); err != nil {
			return fmt.Errorf("schema: decode value: %w", err)
		}
		*v = String(number.String())
	}
	return nil
}

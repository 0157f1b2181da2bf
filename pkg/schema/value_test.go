package schema

import (
	"encoding/json"
	"testing"
)

func TestValueStringAndBoolPayloads(t *testing.T) {
	t.Parallel()

	text := String("Acme Logistics")
	if text.IsBool() {
		t.Fatalf("text value reported as bool")
	}
	if text.Text() != "Acme Logistics" || text.String() != "Acme Logistics" {
		t.Fatalf("text payload mismatch: %q / %q", text.Text(), text.String())
	}

	flag := Bool(true)
	if !flag.IsBool() || !flag.Bool() {
		t.Fatalf("bool payload lost")
	}
	if flag.String() != "true" {
		t.Fatalf("bool stringified as %q, want %q", flag.String(), "true")
	}
	if flag.Text() != "" {
		t.Fatalf("bool value returned text %q", flag.Text())
	}
}

func TestValueIsZero(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value Value
		want  bool
	}{
		{Value{}, true},
		{String(""), true},
		{String("0"), false},
		{String("x"), false},
		{Bool(false), true},
		{Bool(true), false},
	}

	for _, tc := range cases {
		if got := tc.value.IsZero(); got != tc.want {
			t.Fatalf("IsZero(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValueTruthy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value Value
		want  bool
	}{
		{Bool(true), true},
		{Bool(false), false},
		{String("true"), true},
		{String(" TRUE "), true},
		{String("1"), true},
		{String("yes"), true},
		{String("y"), true},
		{String("2"), true},
		{String("0"), false},
		{String("0.0"), false},
		{String("no"), false},
		{String(""), false},
	}

	for _, tc := range cases {
		if got := tc.value.Truthy(); got != tc.want {
			t.Fatalf("Truthy(%q) = %v, want %v", tc.value.String(), got, tc.want)
		}
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"text":"New York","flag":true,"count":12,"ratio":2.5,"empty":null}`)
	var decoded map[string]Value
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal values: %v", err)
	}

	if got := decoded["text"]; got != String("New York") {
		t.Fatalf("text decoded as %#v", got)
	}
	if got := decoded["flag"]; got != Bool(true) {
		t.Fatalf("flag decoded as %#v", got)
	}
	if got := decoded["count"]; got != String("12") {
		t.Fatalf("count decoded as %#v", got)
	}
	if got := decoded["ratio"]; got != String("2.5") {
		t.Fatalf("ratio decoded as %#v", got)
	}
	if got := decoded["empty"]; !got.IsZero() {
		t.Fatalf("null decoded as %#v", got)
	}

	encoded, err := json.Marshal(map[string]Value{"a": String("x"), "b": Bool(false)})
	if err != nil {
		t.Fatalf("marshal values: %v", err)
	}
	if string(encoded) != `{"a":"x","b":false}` {
		t.Fatalf("unexpected encoding: %s", encoded)
	}
}

func TestValueRejectsStructuredJSON(t *testing.T) {
	t.Parallel()

	var v Value
	if err := json.Unmarshal([]byte(`{"nested":true}`), &v); err == nil {
		t.Fatalf("expected object payload to be rejected")
	}
	if err := json.Unmarshal([]byte(`[1,2]`), &v); err == nil {
		t.Fatalf("expected array payload to be rejected")
	}
}

func TestValueOf(t *testing.T) {
	t.Parallel()

	if got := ValueOf("plain"); got != String("plain") {
		t.Fatalf("string conversion: %#v", got)
	}
	if got := ValueOf(true); got != Bool(true) {
		t.Fatalf("bool conversion: %#v", got)
	}
	if got := ValueOf(7); got != String("7") {
		t.Fatalf("int conversion: %#v", got)
	}
	if got := ValueOf(2.5); got != String("2.5") {
		t.Fatalf("float conversion: %#v", got)
	}
	if got := ValueOf(nil); !got.IsZero() {
		t.Fatalf("nil conversion: %#v", got)
	}
	if got := ValueOf(String("wrapped")); got != String("wrapped") {
		t.Fatalf("identity conversion: %#v", got)
	}
}

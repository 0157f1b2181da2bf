package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-svgform/pkg/schema"
)

// valueSet keeps collected answers in prompt order so serialized output
// follows the field sequence of the document rather than map iteration order.
type valueSet struct {
	order  []string
	labels map[string]string
	data   map[string]any
}

func newValueSet() *valueSet {
	return &valueSet{
		labels: make(map[string]string),
		data:   make(map[string]any),
	}
}

func (v *valueSet) add(field schema.FieldDescriptor, value any) {
	if _, ok := v.data[field.ID]; !ok {
		v.order = append(v.order, field.ID)
	}
	v.data[field.ID] = value
	v.labels[field.ID] = field.Name
}

// values returns a copy of the collected map for transformer hooks.
func (v *valueSet) values() map[string]any {
	out := make(map[string]any, len(v.data))
	for id, value := range v.data {
		out[id] = value
	}
	return out
}

// replace swaps in a transformed value map, keeping the original prompt order
// for surviving ids and appending new ones alphabetically.
func (v *valueSet) replace(values map[string]any) {
	data := make(map[string]any, len(values))
	var order []string
	for _, id := range v.order {
		if value, ok := values[id]; ok {
			data[id] = value
			order = append(order, id)
		}
	}

	var added []string
	for id := range values {
		if _, ok := data[id]; !ok {
			added = append(added, id)
		}
	}
	sort.Strings(added)
	for _, id := range added {
		data[id] = values[id]
		order = append(order, id)
	}

	v.data = data
	v.order = order
}

// encodeJSON writes a JSON object with keys in prompt order. encoding/json
// sorts map keys, so the object is assembled pair by pair.
func (v *valueSet) encodeJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range v.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, fmt.Errorf("tui: encode key %s: %w", id, err)
		}
		value, err := json.Marshal(v.data[id])
		if err != nil {
			return nil, fmt.Errorf("tui: encode value for %s: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v *valueSet) encodeForm() []byte {
	var b strings.Builder
	for i, id := range v.order {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(id))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(stringifyValue(v.data[id])))
	}
	return []byte(b.String())
}

func (v *valueSet) encodePretty() []byte {
	var b strings.Builder
	for _, id := range v.order {
		label := v.labels[id]
		if label == "" {
			label = id
		}
		fmt.Fprintf(&b, "%s: %s\n", label, stringifyValue(v.data[id]))
	}
	return []byte(b.String())
}

func stringifyValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		if typed {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(typed)
	}
}

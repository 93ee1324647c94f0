package bus

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// Event names shared by the standard widgets.
const (
	ChartHover       = "canon:chart:hover"
	ChartLeave       = "canon:chart:leave"
	DataTableHover   = "canon:datatable:hover"
	DataTableLeave   = "canon:datatable:leave"
	ResizeStart      = "canon:resize:start"
	ResizeMove       = "canon:resize:move"
	ResizeEnd        = "canon:resize:end"
	SelectionChanged = "canon:selection:changed"
	OverlayOpen      = "canon:overlay:open"
	OverlayClose     = "canon:overlay:close"
)

const eventNamePrefix = "canon:"

// Detail is the payload of an Event.
type Detail map[string]any

// Event is a named message with a primitive payload.
type Event struct {
	Name   string `json:"name"`
	Detail Detail `json:"detail,omitempty"`
}

// NewEvent builds an event from alternating key/value pairs. Pairs whose
// key is not a string or whose value is not a primitive are dropped.
func NewEvent(name string, kv ...any) Event {
	e := Event{Name: name}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok || !isPrimitive(kv[i+1]) {
			continue
		}
		if e.Detail == nil {
			e.Detail = make(Detail, len(kv)/2)
		}
		e.Detail[key] = kv[i+1]
	}
	return e
}

// IsCanonEvent reports whether name belongs to the canon: namespace.
func IsCanonEvent(name string) bool {
	return len(name) > len(eventNamePrefix) && name[:len(eventNamePrefix)] == eventNamePrefix
}

// MarshalJSON encodes the event for logs and debug endpoints.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	return json.Marshal(plain(e))
}

func isPrimitive(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// Has reports whether key is present.
func (d Detail) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// String returns the value at key formatted as a string.
func (d Detail) String(key string) string {
	if v, ok := d[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// Int returns the value at key as an int, or 0.
func (d Detail) Int(key string) int {
	if v, ok := d[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case int64:
			return int(val)
		case int32:
			return int(val)
		case float64:
			return int(val)
		case float32:
			return int(val)
		case string:
			i, _ := strconv.Atoi(val)
			return i
		}
	}
	return 0
}

// Float returns the value at key as a float64, or 0.
func (d Detail) Float(key string) float64 {
	if v, ok := d[key]; ok {
		switch val := v.(type) {
		case float64:
			return val
		case float32:
			return float64(val)
		case int:
			return float64(val)
		case int64:
			return float64(val)
		case string:
			f, _ := strconv.ParseFloat(val, 64)
			return f
		}
	}
	return 0.0
}

// Bool returns the value at key as a bool, or false.
func (d Detail) Bool(key string) bool {
	if v, ok := d[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
		b, _ := strconv.ParseBool(fmt.Sprintf("%v", v))
		return b
	}
	return false
}

func (d Detail) clone() map[string]any {
	if d == nil {
		return nil
	}
	m := make(map[string]any, len(d))
	for k, v := range d {
		m[k] = v
	}
	return m
}

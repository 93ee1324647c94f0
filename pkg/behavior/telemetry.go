package behavior

import (
	"sync"
	"time"
)

const (
	defaultTelemetryLimit = 1000
	defaultTelemetryDrain = 500
)

// TelemetryKind classifies telemetry records.
type TelemetryKind uint8

const (
	TelemetryAttached TelemetryKind = iota
	TelemetryError
)

// String returns the record kind's name.
func (k TelemetryKind) String() string {
	if k == TelemetryError {
		return "error"
	}
	return "attached"
}

// MarshalText encodes the kind by name.
func (k TelemetryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// TelemetryRecord is one attach outcome.
type TelemetryRecord struct {
	Kind      TelemetryKind `json:"kind"`
	Behavior  string        `json:"behavior"`
	Attribute string        `json:"attribute"`
	ElementID string        `json:"element_id"`
	Error     string        `json:"error,omitempty"`
	At        time.Time     `json:"at"`
}

// Telemetry keeps a bounded history of attach outcomes. When the history
// exceeds its limit the oldest half is dropped.
type Telemetry struct {
	mu      sync.Mutex
	records []TelemetryRecord
	limit   int
	drain   int
	now     func() time.Time

	attached uint64
	failed   uint64
}

// NewTelemetry creates a history holding up to 1000 records.
func NewTelemetry() *Telemetry {
	return NewTelemetryWithLimit(defaultTelemetryLimit)
}

// NewTelemetryWithLimit creates a history holding up to limit records.
func NewTelemetryWithLimit(limit int) *Telemetry {
	if limit <= 0 {
		limit = defaultTelemetryLimit
	}
	drain := limit / 2
	if limit == defaultTelemetryLimit {
		drain = defaultTelemetryDrain
	}
	if drain == 0 {
		drain = 1
	}
	return &Telemetry{limit: limit, drain: drain, now: time.Now}
}

// Record appends r, stamping it if r.At is zero.
func (t *Telemetry) Record(r TelemetryRecord) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if r.At.IsZero() {
		r.At = t.now()
	}
	if r.Kind == TelemetryError {
		t.failed++
	} else {
		t.attached++
	}
	t.records = append(t.records, r)
	if len(t.records) > t.limit {
		t.records = append(t.records[:0:0], t.records[t.drain:]...)
	}
}

// Records returns a copy of the retained history, oldest first.
func (t *Telemetry) Records() []TelemetryRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TelemetryRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Len returns the number of retained records.
func (t *Telemetry) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}

// Totals returns lifetime attach and error counts, including dropped records.
func (t *Telemetry) Totals() (attached, failed uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attached, t.failed
}

// Reset clears the history and totals.
func (t *Telemetry) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = nil
	t.attached = 0
	t.failed = 0
}

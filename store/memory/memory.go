// Package memory provides an in-memory persistence adapter for tests and
// development. Values round-trip through JSON so a test exercises the same
// encode/decode path as the SQLite adapter.
package memory

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Adapter implements store.Adapter on a map.
type Adapter struct {
	mu     sync.RWMutex
	fields map[string]json.RawMessage

	// FailSaves makes every Save return an error, for flush-failure tests.
	FailSaves bool
}

func New() *Adapter {
	return &Adapter{fields: make(map[string]json.RawMessage)}
}

func (a *Adapter) Load(field string, out any) (bool, error) {
	a.mu.RLock()
	body, ok := a.fields[field]
	a.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", field, err)
	}
	return true, nil
}

func (a *Adapter) Save(field string, v any) error {
	if a.FailSaves {
		return fmt.Errorf("save %s: adapter unavailable", field)
	}
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", field, err)
	}
	a.mu.Lock()
	a.fields[field] = body
	a.mu.Unlock()
	return nil
}

func (a *Adapter) Close() error { return nil }

// SetRaw stores a raw JSON body, for corrupt-field tests.
func (a *Adapter) SetRaw(field string, body []byte) {
	a.mu.Lock()
	a.fields[field] = json.RawMessage(body)
	a.mu.Unlock()
}

package repository

import (
	"context"
	"math"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexoventlabs/business-tracker/internal/business"
)

type memoryEntry struct {
	oid string
	doc business.Record
}

// MemoryRepo is an in-memory repository used for local runs (STORE_DRIVER=memory)
// and unit tests. Records keep insertion order so "first match" behaves like a
// natural-order collection scan.
type MemoryRepo struct {
	mu       sync.RWMutex
	entries  []memoryEntry
	uniqueID bool
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// NewMemoryRepoUnique returns a MemoryRepo that rejects duplicate "id" values.
func NewMemoryRepoUnique() *MemoryRepo {
	return &MemoryRepo{uniqueID: true}
}

func (m *MemoryRepo) List(ctx context.Context) ([]business.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]business.Record, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.doc.WithoutInternalID())
	}
	return out, nil
}

func (m *MemoryRepo) Create(ctx context.Context, rec business.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := rec.WithoutInternalID()
	if m.uniqueID {
		if v, ok := doc[business.FieldID]; ok && m.indexOfValue(v, -1) >= 0 {
			return "", ErrDuplicateID
		}
	}
	oid := primitive.NewObjectID().Hex()
	m.entries = append(m.entries, memoryEntry{oid: oid, doc: doc})
	return oid, nil
}

func (m *MemoryRepo) Update(ctx context.Context, id int64, fields business.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if m.uniqueID {
		if v, ok := fields[business.FieldID]; ok && m.indexOfValue(v, i) >= 0 {
			return ErrDuplicateID
		}
	}
	doc := m.entries[i].doc.Clone()
	for k, v := range fields {
		if k == business.FieldInternalID {
			continue
		}
		doc[k] = v
	}
	m.entries[i].doc = doc
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return nil
}

func (m *MemoryRepo) Ping(ctx context.Context) error { return nil }

func (m *MemoryRepo) indexOf(id int64) int {
	for i, e := range m.entries {
		if numericEquals(e.doc[business.FieldID], id) {
			return i
		}
	}
	return -1
}

// indexOfValue finds a record (other than skip) whose id holds the same value as v.
func (m *MemoryRepo) indexOfValue(v any, skip int) int {
	n, ok := asInt64(v)
	for i, e := range m.entries {
		if i == skip {
			continue
		}
		if ok && numericEquals(e.doc[business.FieldID], n) {
			return i
		}
		if !ok && reflect.DeepEqual(e.doc[business.FieldID], v) {
			return i
		}
	}
	return -1
}

// numericEquals mirrors the store's cross-type numeric comparison: 1, int32(1)
// and 1.0 all match an integer filter of 1.
func numericEquals(v any, n int64) bool {
	switch t := v.(type) {
	case float64:
		return t == math.Trunc(t) && t == float64(n)
	case float32:
		return float64(t) == float64(n)
	}
	got, ok := asInt64(v)
	return ok && got == n
}

func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return int64(t), true
		}
	}
	return 0, false
}

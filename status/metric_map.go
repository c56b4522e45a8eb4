package status

import (
	"sync"

	"github.com/elliotchance/orderedmap/v2"
)

// MetricMap is a thread-safe registry for metrics of type T
// Registration takes the mutex; cached pointers are then read and written lock-free
// Range walks metrics in registration order so the HUD and status endpoint list them as components created them
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items *orderedmap.OrderedMap[string, *T]
}

// NewMetricMap creates an initialized MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{
		items: orderedmap.NewOrderedMap[string, *T](),
	}
}

// Get returns the metric pointer for key, creating if absent
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items.Get(key)
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if ptr, ok := m.items.Get(key); ok {
		return ptr
	}
	ptr = new(T)
	m.items.Set(key, ptr)
	return ptr
}

// Range iterates over all metrics in registration order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for el := m.items.Front(); el != nil; el = el.Next() {
		fn(el.Key, el.Value)
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items.Len()
}

package registry

import "sync"

// HashTable mirrors CipherTable's register/lookup contract for
// HashDescriptors.
type HashTable struct {
	mu       sync.RWMutex
	capacity int
	entries  []*HashDescriptor
}

// NewHashTable returns a table with the given slot capacity (0 ->
// DefaultCapacity).
func NewHashTable(capacity int) *HashTable {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &HashTable{capacity: capacity}
}

// Hashes is the process-wide hash table every hashes/* sub-package
// registers into from its init().
var Hashes = NewHashTable(DefaultCapacity)

// Register installs desc, returning its index, or the index of an
// existing same-named descriptor.
func (t *HashTable) Register(desc *HashDescriptor) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, e := range t.entries {
		if e != nil && e.Name == desc.Name {
			return i, nil
		}
	}
	for i, e := range t.entries {
		if e == nil {
			t.entries[i] = desc
			return i, nil
		}
	}
	if len(t.entries) >= t.capacity {
		return -1, ErrTableFull
	}
	t.entries = append(t.entries, desc)
	return len(t.entries) - 1, nil
}

// Unregister removes desc by pointer identity.
func (t *HashTable) Unregister(desc *HashDescriptor) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, e := range t.entries {
		if e == desc {
			t.entries[i] = nil
			return true
		}
	}
	return false
}

// FindByName returns the earliest-registered descriptor named name.
func (t *HashTable) FindByName(name string) (*HashDescriptor, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e != nil && e.Name == name {
			return e, i
		}
	}
	return nil, -1
}

// FindByID returns the earliest-registered descriptor with the given ID.
func (t *HashTable) FindByID(id byte) (*HashDescriptor, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e != nil && e.ID == id {
			return e, i
		}
	}
	return nil, -1
}

// All returns every non-nil registered descriptor, in slot order.
func (t *HashTable) All() []*HashDescriptor {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*HashDescriptor, 0, len(t.entries))
	for _, e := range t.entries {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

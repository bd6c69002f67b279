package registry

import "sync"

// CipherTable is a fixed-capacity, name-unique table of CipherDescriptors.
// Registration is not safe for concurrent use with other registrations
// (spec.md §4.1 "callers serialize it at program start"); lookups, once
// registration has quiesced, are safe for concurrent readers because the
// slice is only ever appended to under the same mutex and never reordered
// in place — matching spec.md §5's "populated before any concurrent use,
// then read-only."
type CipherTable struct {
	mu       sync.RWMutex
	capacity int
	entries  []*CipherDescriptor
}

// NewCipherTable returns a table with the given slot capacity. A capacity
// of 0 uses DefaultCapacity.
func NewCipherTable(capacity int) *CipherTable {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &CipherTable{capacity: capacity}
}

// Ciphers is the process-wide cipher table every ciphers/* sub-package
// registers into from its init().
var Ciphers = NewCipherTable(DefaultCapacity)

// Register installs desc, returning its index. If a descriptor with the
// same name is already present, its index is returned instead and desc is
// not installed again — spec.md §4.1: "scans for existing name match
// (returns that index) else first empty slot."
func (t *CipherTable) Register(desc *CipherDescriptor) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, e := range t.entries {
		if e == nil {
			continue
		}
		if e.Name == desc.Name {
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

// Unregister removes desc by pointer identity, per spec.md §4.1.
func (t *CipherTable) Unregister(desc *CipherDescriptor) bool {
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

// FindByName returns the earliest-registered descriptor named name, per
// spec.md §4.1's invariant.
func (t *CipherTable) FindByName(name string) (*CipherDescriptor, int) {
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
func (t *CipherTable) FindByID(id byte) (*CipherDescriptor, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e != nil && e.ID == id {
			return e, i
		}
	}
	return nil, -1
}

// FindAny implements spec.md §4.1's find_cipher_any: look up by name
// first, and if that fails, fall back to any registered cipher meeting the
// block/key length constraints (0 means "don't care" for that constraint).
func (t *CipherTable) FindAny(name string, blockLen, keyLen int) (*CipherDescriptor, int) {
	if name != "" {
		if d, i := t.FindByName(name); d != nil {
			return d, i
		}
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	for i, e := range t.entries {
		if e == nil {
			continue
		}
		if blockLen != 0 && e.BlockLen != blockLen {
			continue
		}
		if keyLen != 0 && (keyLen < e.MinKeyLen || keyLen > e.MaxKeyLen) {
			continue
		}
		return e, i
	}
	return nil, -1
}

// All returns every non-nil registered descriptor, in slot order.
func (t *CipherTable) All() []*CipherDescriptor {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*CipherDescriptor, 0, len(t.entries))
	for _, e := range t.entries {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

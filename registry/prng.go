package registry

import "sync"

// PRNGTable mirrors CipherTable's register/lookup contract for
// PRNGDescriptors, which spec.md §3 identifies by name only (no one-byte
// ID is part of the PRNG descriptor contract).
type PRNGTable struct {
	mu       sync.RWMutex
	capacity int
	entries  []*PRNGDescriptor
}

// NewPRNGTable returns a table with the given slot capacity (0 ->
// DefaultCapacity).
func NewPRNGTable(capacity int) *PRNGTable {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &PRNGTable{capacity: capacity}
}

// PRNGs is the process-wide PRNG table every prng/* sub-package registers
// into from its init().
var PRNGs = NewPRNGTable(DefaultCapacity)

// Register installs desc, returning its index, or the index of an
// existing same-named descriptor.
func (t *PRNGTable) Register(desc *PRNGDescriptor) (int, error) {
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
func (t *PRNGTable) Unregister(desc *PRNGDescriptor) bool {
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
func (t *PRNGTable) FindByName(name string) (*PRNGDescriptor, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e != nil && e.Name == name {
			return e, i
		}
	}
	return nil, -1
}

// All returns every non-nil registered descriptor, in slot order.
func (t *PRNGTable) All() []*PRNGDescriptor {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*PRNGDescriptor, 0, len(t.entries))
	for _, e := range t.entries {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

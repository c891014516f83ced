package engine

import (
	"fmt"

	"github.com/BartekS5/kaiten2planka/internal/mapper"
)

// IDTable maps (entity kind, source ID) to the created target ID for one
// run. Entries are write-once; Put refuses to overwrite. The table is
// owned by the Migrator and never accessed concurrently, so there is no
// locking.
type IDTable struct {
	entries map[mapper.Kind]map[string]string
}

// NewIDTable returns an empty table.
func NewIDTable() *IDTable {
	return &IDTable{entries: make(map[mapper.Kind]map[string]string)}
}

// Put records a mapping. It returns an error when the key already has a
// target ID; an existing mapping is never overwritten.
func (t *IDTable) Put(kind mapper.Kind, sourceID, targetID string) error {
	byKind, ok := t.entries[kind]
	if !ok {
		byKind = make(map[string]string)
		t.entries[kind] = byKind
	}
	if existing, ok := byKind[sourceID]; ok {
		return fmt.Errorf("mapping for %s %s already exists (target %s)", kind, sourceID, existing)
	}
	byKind[sourceID] = targetID
	return nil
}

// Get looks up the target ID for a source entity.
func (t *IDTable) Get(kind mapper.Kind, sourceID string) (string, bool) {
	targetID, ok := t.entries[kind][sourceID]
	return targetID, ok
}

// Len reports how many mappings exist for a kind.
func (t *IDTable) Len(kind mapper.Kind) int {
	return len(t.entries[kind])
}

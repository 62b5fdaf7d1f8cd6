package healing

// SnapshotStore maps logical element names to their most recent snapshot.
// A store belongs to exactly one session and is only touched synchronously
// from that session, so it carries no locking. Entries are never expired
// automatically: they are overwritten on every successful resolution and
// removed only by Clear.
type SnapshotStore struct {
	snapshots map[string]Snapshot
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snapshots: make(map[string]Snapshot)}
}

// Put records the latest snapshot for a logical name, replacing any
// previous entry.
func (s *SnapshotStore) Put(name string, snap Snapshot) {
	s.snapshots[name] = snap
}

// Get returns the cached snapshot for a logical name.
func (s *SnapshotStore) Get(name string) (Snapshot, bool) {
	snap, ok := s.snapshots[name]
	return snap, ok
}

// Clear removes every entry, typically at end of a test session.
func (s *SnapshotStore) Clear() {
	s.snapshots = make(map[string]Snapshot)
}

// Size returns the current entry count.
func (s *SnapshotStore) Size() int {
	return len(s.snapshots)
}

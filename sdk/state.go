package sdk

// State is the key/value storage surface every contract writes through.
// Values are opaque strings; encoding is the caller's business.
type State interface {
	Set(key, value string)
	Get(key string) *string
	Delete(key string)
}

// journalEntry remembers what a key looked like before a write so a failed
// call can be unwound. prev == nil means the key did not exist.
type journalEntry struct {
	key  string
	prev *string
}

// MemState is the in-memory State used by the host. Every mutation is
// journaled, which is what gives top-level calls their all-or-nothing
// semantics: see Host.Execute.
type MemState struct {
	db      map[string]string
	journal []journalEntry
}

func NewMemState() *MemState {
	return &MemState{db: make(map[string]string)}
}

func (m *MemState) Set(key, value string) {
	m.record(key)
	m.db[key] = value
}

func (m *MemState) Get(key string) *string {
	val, ok := m.db[key]
	if !ok {
		return nil
	}
	return &val
}

func (m *MemState) Delete(key string) {
	if _, ok := m.db[key]; !ok {
		return
	}
	m.record(key)
	delete(m.db, key)
}

func (m *MemState) record(key string) {
	if val, ok := m.db[key]; ok {
		cp := val
		m.journal = append(m.journal, journalEntry{key: key, prev: &cp})
	} else {
		m.journal = append(m.journal, journalEntry{key: key})
	}
}

// Snapshot marks the current journal position.
// Example: snap := st.Snapshot(); ...; st.RevertTo(snap)
func (m *MemState) Snapshot() int {
	return len(m.journal)
}

// RevertTo unwinds every write made after the snapshot, newest first.
func (m *MemState) RevertTo(snap int) {
	for i := len(m.journal) - 1; i >= snap; i-- {
		e := m.journal[i]
		if e.prev == nil {
			delete(m.db, e.key)
		} else {
			m.db[e.key] = *e.prev
		}
	}
	m.journal = m.journal[:snap]
}

// Len reports how many keys currently exist, mostly for tests.
func (m *MemState) Len() int {
	return len(m.db)
}

package api

// Store is the single key-value slot holding the serialized reflection
// collection. Reads of an absent or corrupt slot yield an empty collection,
// never an error; writes replace the whole slot (last write wins, no lock
// beyond in-process synchronization).
type Store interface {
	ReadReflections() ([]*Reflection, error)
	WriteReflections(rs []*Reflection) error
	ClearReflections() error
}

var _ Store = (*memoryStore)(nil)

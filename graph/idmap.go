package graph

// IDMap translates between the ids a graph source uses for its nodes and the
// dense ids in [0, NodeCount) used by the engine.
type IDMap struct {
	toInternal map[int64]int64
	toOriginal []int64
}

func NewIDMap() *IDMap {
	return &IDMap{toInternal: make(map[int64]int64)}
}

// Add registers original and returns its internal id. Adding an id twice
// returns the id assigned on the first call.
func (m *IDMap) Add(original int64) int64 {
	if id, ok := m.toInternal[original]; ok {
		return id
	}
	id := int64(len(m.toOriginal))
	m.toInternal[original] = id
	m.toOriginal = append(m.toOriginal, original)
	return id
}

func (m *IDMap) ToInternal(original int64) (int64, bool) {
	id, ok := m.toInternal[original]
	return id, ok
}

// ToOriginal returns the source id of an internal id. It panics if internal
// is out of range.
func (m *IDMap) ToOriginal(internal int64) int64 { return m.toOriginal[internal] }

func (m *IDMap) NodeCount() int64 { return int64(len(m.toOriginal)) }

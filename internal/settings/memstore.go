package settings

import "strconv"

// MemStore is an in-memory Store. It backs tests and one-shot CLI operations
// that never touch disk.
type MemStore struct {
	values map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (m *MemStore) Get(key string) string {
	return m.values[key]
}

func (m *MemStore) GetInt(key string) int {
	v, err := strconv.Atoi(m.values[key])
	if err != nil {
		return 0
	}
	return v
}

func (m *MemStore) Set(key, value string) {
	m.values[key] = value
}

func (m *MemStore) SetInt(key string, value int) {
	m.values[key] = strconv.Itoa(value)
}

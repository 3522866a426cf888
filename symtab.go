package mewa

// SymbolTable maps packed symbols to values with open addressing and linear
// probing. Its capacity is fixed. There are no tombstones, so entries can
// only be removed in the reverse of the order they were added, as with
// nested scopes.
//
// The evaluator does not consult a SymbolTable; it is for hosts that bind
// symbols themselves.
type SymbolTable struct {
	keys []uint64
	vals []Value
	n    int
}

// NewSymbolTable creates a table that holds up to capacity entries.
func NewSymbolTable(capacity int) *SymbolTable {
	if capacity <= 0 {
		panic("mewa: symbol table capacity must be positive")
	}
	return &SymbolTable{keys: make([]uint64, capacity), vals: make([]Value, capacity)}
}

// find returns the slot holding key, or the empty slot where it belongs. The
// result is -1 if key is absent and the table is full.
func (t *SymbolTable) find(key uint64) int {
	if key == 0 {
		panic("mewa: zero symbol key")
	}
	c := uint64(len(t.keys))
	i := key % c
	for k := uint64(0); k < c; k++ {
		switch t.keys[i] {
		case key, 0:
			return int(i)
		}
		i++
		if i == c {
			i = 0
		}
	}
	return -1
}

// Get returns the value bound to key.
func (t *SymbolTable) Get(key uint64) (Value, bool) {
	i := t.find(key)
	if i < 0 || t.keys[i] != key {
		return Value{}, false
	}
	return t.vals[i], true
}

// Set binds key to v, replacing any existing binding. Returns false if key
// is new and the table is full.
func (t *SymbolTable) Set(key uint64, v Value) bool {
	i := t.find(key)
	if i < 0 {
		return false
	}
	if t.keys[i] == 0 {
		t.keys[i] = key
		t.n++
	}
	t.vals[i] = v
	return true
}

// Pop removes the binding for key. Returns false if there was none.
// Removing anything other than the most recently added key may hide other
// keys from Get.
func (t *SymbolTable) Pop(key uint64) bool {
	i := t.find(key)
	if i < 0 || t.keys[i] != key {
		return false
	}
	t.keys[i], t.vals[i] = 0, Value{}
	t.n--
	return true
}

// Len returns the number of bindings in the table.
func (t *SymbolTable) Len() int {
	return t.n
}

// Cap returns the number of bindings the table can hold.
func (t *SymbolTable) Cap() int {
	return len(t.keys)
}

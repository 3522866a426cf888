package mewa

// DefaultBlockSize is the number of nodes in each arena block when NewArena
// is given a non-positive size.
const DefaultBlockSize = 256

// Arena allocates parse tree nodes from large blocks. Nodes are never freed
// individually. Reset makes all nodes available for reuse while keeping the
// blocks, so a read-eval loop can parse any number of expressions with
// bounded memory. Expressions parsed with an arena are invalid after the
// arena is reset or released. An Arena is not safe for concurrent use.
type Arena struct {
	blocks [][]node
	// cur is the index of the block currently being filled, and off is the
	// index of the next free node in it.
	cur, off int
	size     int
	n        int
}

// NewArena creates an arena whose blocks hold size nodes each.
func NewArena(size int) *Arena {
	if size <= 0 {
		size = DefaultBlockSize
	}
	return &Arena{size: size}
}

// alloc returns a pointer to a zeroed node.
func (a *Arena) alloc() *node {
	return &a.allocn(1)[0]
}

// allocn returns k contiguous zeroed nodes. If the current block doesn't have
// room, allocation moves to the next block with enough room, adding a block
// of at least k nodes if there is none.
func (a *Arena) allocn(k int) []node {
	if a.size <= 0 {
		a.size = DefaultBlockSize
	}
	for a.cur < len(a.blocks) && a.off+k > len(a.blocks[a.cur]) {
		a.cur++
		a.off = 0
	}
	if a.cur == len(a.blocks) {
		sz := a.size
		if k > sz {
			sz = k
		}
		a.blocks = append(a.blocks, make([]node, sz))
		a.off = 0
	}
	r := a.blocks[a.cur][a.off : a.off+k : a.off+k]
	a.off += k
	a.n += k
	return r
}

// Reset rewinds the arena to empty. The arena keeps its blocks. Nodes handed
// out before are zeroed, so any expression still referring to them becomes
// meaningless.
func (a *Arena) Reset() {
	for i := 0; i <= a.cur && i < len(a.blocks); i++ {
		b := a.blocks[i]
		if i == a.cur {
			b = b[:a.off]
		}
		for j := range b {
			b[j] = node{}
		}
	}
	a.cur, a.off, a.n = 0, 0, 0
}

// Release drops all of the arena's blocks. The arena may still be used
// afterward; it allocates new blocks as needed.
func (a *Arena) Release() {
	a.blocks = nil
	a.cur, a.off, a.n = 0, 0, 0
}

// Len returns the number of nodes allocated since the last reset.
func (a *Arena) Len() int {
	return a.n
}

// Cap returns the total number of nodes the arena's blocks can hold.
func (a *Arena) Cap() int {
	n := 0
	for _, b := range a.blocks {
		n += len(b)
	}
	return n
}

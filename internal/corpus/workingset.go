package corpus

import "math/rand/v2"

// WorkingSet holds the entries not yet classified in this session.
// Removal swaps the last entry into the freed slot, so it is O(1) and the
// live entries always occupy a dense prefix that Draw samples uniformly.
type WorkingSet struct {
	entries []string
	index   map[string][]int // entry -> positions holding it
}

// NewWorkingSet builds a set from entries in order
func NewWorkingSet(entries []string) *WorkingSet {
	ws := &WorkingSet{
		entries: make([]string, 0, len(entries)),
		index:   make(map[string][]int, len(entries)),
	}
	for _, e := range entries {
		ws.index[e] = append(ws.index[e], len(ws.entries))
		ws.entries = append(ws.entries, e)
	}
	return ws
}

// Len returns the number of live entries
func (ws *WorkingSet) Len() int {
	return len(ws.entries)
}

// At returns the entry at pos
func (ws *WorkingSet) At(pos int) string {
	return ws.entries[pos]
}

// Entries returns a copy of the live entries
func (ws *WorkingSet) Entries() []string {
	out := make([]string, len(ws.entries))
	copy(out, ws.entries)
	return out
}

// Draw picks one entry uniformly at random. ok is false when the set is empty.
func (ws *WorkingSet) Draw(rng *rand.Rand) (pos int, entry string, ok bool) {
	if len(ws.entries) == 0 {
		return -1, "", false
	}
	pos = rng.IntN(len(ws.entries))
	return pos, ws.entries[pos], true
}

// Remove drops one occurrence of entry. It reports whether anything was removed.
func (ws *WorkingSet) Remove(entry string) bool {
	positions := ws.index[entry]
	if len(positions) == 0 {
		return false
	}
	ws.RemoveAt(positions[0])
	return true
}

// RemoveAt drops the entry at pos by swapping the last entry into its place
func (ws *WorkingSet) RemoveAt(pos int) {
	last := len(ws.entries) - 1
	removed := ws.entries[pos]
	ws.dropPosition(removed, pos)

	if pos != last {
		moved := ws.entries[last]
		ws.entries[pos] = moved
		positions := ws.index[moved]
		for i, p := range positions {
			if p == last {
				positions[i] = pos
				break
			}
		}
	}
	ws.entries = ws.entries[:last]
}

func (ws *WorkingSet) dropPosition(entry string, pos int) {
	positions := ws.index[entry]
	for i, p := range positions {
		if p == pos {
			positions = append(positions[:i], positions[i+1:]...)
			break
		}
	}
	if len(positions) == 0 {
		delete(ws.index, entry)
		return
	}
	ws.index[entry] = positions
}

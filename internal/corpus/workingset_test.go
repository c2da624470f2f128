package corpus

import (
	"math/rand/v2"
	"sort"
	"testing"
)

func TestWorkingSet_DrawEmpty(t *testing.T) {
	ws := NewWorkingSet(nil)
	rng := rand.New(rand.NewPCG(1, 2))

	if _, _, ok := ws.Draw(rng); ok {
		t.Fatal("expected no draw from an empty set")
	}
}

func TestWorkingSet_RemoveAtKeepsIndexConsistent(t *testing.T) {
	ws := NewWorkingSet([]string{"a", "b", "a", "c", "a"})

	ws.RemoveAt(0) // last "a" moves to 0
	if ws.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", ws.Len())
	}

	for ws.Remove("a") {
	}
	got := ws.Entries()
	sort.Strings(got)
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("expected [b c], got %v", got)
	}

	if ws.Remove("missing") {
		t.Error("expected Remove of an absent entry to report false")
	}
}

func TestWorkingSet_DrawUniformAfterRemovals(t *testing.T) {
	ws := NewWorkingSet([]string{"a", "b", "c", "d", "e", "f", "g", "h"})
	ws.Remove("b")
	ws.Remove("e")
	ws.RemoveAt(0)

	rng := rand.New(rand.NewPCG(42, 7))
	const draws = 30000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		_, entry, ok := ws.Draw(rng)
		if !ok {
			t.Fatal("unexpected empty draw")
		}
		counts[entry]++
	}

	if len(counts) != ws.Len() {
		t.Fatalf("expected %d distinct entries, got %v", ws.Len(), counts)
	}
	for _, removed := range []string{"a", "b", "e"} {
		if counts[removed] != 0 {
			t.Errorf("removed entry %q was drawn %d times", removed, counts[removed])
		}
	}

	expected := draws / ws.Len()
	for entry, n := range counts {
		if n < expected*9/10 || n > expected*11/10 {
			t.Errorf("entry %q drawn %d times, expected about %d", entry, n, expected)
		}
	}
}

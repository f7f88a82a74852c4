package timing

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRecorderStart(t *testing.T) {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	r := NewRecorder()
	r.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * 10 * time.Millisecond)
	}

	stop := r.Start("coverage")
	if d := stop(); d != 10*time.Millisecond {
		t.Fatalf("elapsed = %v, want 10ms", d)
	}

	want := []Entry{{Name: "coverage", Duration: 10 * time.Millisecond}}
	if diff := cmp.Diff(want, r.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorderConcurrentAdd(t *testing.T) {
	r := NewRecorder()
	names := []string{"submolts", "coverage", "languages", "pairs", "transmission"}

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Add(name, time.Duration(i+1)*time.Millisecond)
		}()
	}
	wg.Wait()

	got := r.Entries()
	if len(got) != len(names) {
		t.Fatalf("got %d entries, want %d", len(got), len(names))
	}
	if got[0].Name != "coverage" || got[len(got)-1].Name != "transmission" {
		t.Fatalf("entries not ordered by name: %+v", got)
	}

	slowest, ok := r.Slowest()
	if !ok || slowest.Name != "transmission" {
		t.Fatalf("Slowest = %+v, %v", slowest, ok)
	}
}

func TestRecorderEmpty(t *testing.T) {
	if _, ok := NewRecorder().Slowest(); ok {
		t.Fatal("empty recorder has no slowest entry")
	}
}

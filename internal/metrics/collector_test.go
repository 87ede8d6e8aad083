package metrics

import (
	"testing"
	"time"
)

func TestCollectorRecordsTimings(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpWebSearch, 100*time.Millisecond)
	c.RecordTiming(OpWebSearch, 300*time.Millisecond)
	c.RecordFailure(OpWebSearch)
	c.RecordFailure(OpLLMGenerate)

	snap := c.Snapshot()

	ws, ok := snap.Operations[OpWebSearch]
	if !ok {
		t.Fatal("web_search missing from snapshot")
	}
	if ws.Count != 2 {
		t.Errorf("Count = %d, want 2", ws.Count)
	}
	if ws.Failures != 1 {
		t.Errorf("Failures = %d, want 1", ws.Failures)
	}
	if ws.MinTimeMs != 100 || ws.MaxTimeMs != 300 {
		t.Errorf("Min/Max = %d/%d, want 100/300", ws.MinTimeMs, ws.MaxTimeMs)
	}
	if ws.AvgTimeMs != 200 {
		t.Errorf("AvgTimeMs = %v, want 200", ws.AvgTimeMs)
	}

	llm := snap.Operations[OpLLMGenerate]
	if llm.Count != 0 || llm.Failures != 1 {
		t.Errorf("llm snapshot = %+v, want failure-only entry", llm)
	}
	// Failure-only entries must not leak the MaxInt64 sentinel.
	if llm.MinTimeMs != 0 {
		t.Errorf("MinTimeMs = %d, want 0 for failure-only op", llm.MinTimeMs)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.RecordTiming(OpJobStore, time.Second)
	c.RecordFailure(OpJobStore)
	if snap := c.Snapshot(); len(snap.Operations) != 0 {
		t.Errorf("nil collector snapshot = %+v", snap)
	}
}

func TestCollectorConcurrentAccess(t *testing.T) {
	c := NewCollector()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				c.RecordTiming(OpWebSearch, time.Millisecond)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	if got := c.Snapshot().Operations[OpWebSearch].Count; got != 800 {
		t.Errorf("Count = %d, want 800", got)
	}
}

package metrics

import "testing"

func TestReadMemory(t *testing.T) {
	t.Parallel()

	snap := ReadMemory()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

var sink []byte

func TestMemorySnapshot_Since(t *testing.T) {
	t.Parallel()

	before := ReadMemory()
	sink = make([]byte, 1<<20)
	delta := ReadMemory().Since(before)

	if delta.TotalAlloc < 1<<20 {
		t.Errorf("TotalAlloc delta = %d, want at least 1 MiB", delta.TotalAlloc)
	}
}

func TestSampleSystem_InRange(t *testing.T) {
	t.Parallel()

	s := SampleSystem()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent = %f out of range", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent = %f out of range", s.MemPercent)
	}
}

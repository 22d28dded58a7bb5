package util

import "testing"

func TestSizeHistogram(t *testing.T) {
	h := NewSizeHistogram()

	if s := h.Summary(); s.Count != 0 || s.P50 != 0 {
		t.Errorf("Expected empty summary, got %+v", s)
	}

	for i := 0; i < 90; i++ {
		h.AddSample(100)
	}
	for i := 0; i < 10; i++ {
		h.AddSample(100000)
	}

	if h.Count() != 100 {
		t.Errorf("Expected 100 samples, got %d", h.Count())
	}
	if h.Average() != (90*100+10*100000)/100 {
		t.Errorf("Unexpected average %d", h.Average())
	}
	// 100 falls into (64, 256]
	if p := h.Percentile(50); p != (64+256)/2 {
		t.Errorf("Expected median estimate 160, got %d", p)
	}
	// 100000 falls into (65536, 262144]
	if p := h.Percentile(99); p != (65536+262144)/2 {
		t.Errorf("Expected p99 estimate 163840, got %d", p)
	}
	if h.Percentile(101) != 0 {
		t.Errorf("Out of range percentile should be 0")
	}

	h.AddSample(1 << 30)
	if p := h.Percentile(100); p != 67108864*2 {
		t.Errorf("Expected overflow bucket estimate, got %d", p)
	}

	h.Reset()
	if h.Count() != 0 || h.Average() != 0 {
		t.Errorf("Expected reset histogram")
	}
}

func TestHashString(t *testing.T) {
	seed := GenerateSeed()
	if HashString("session", seed) != HashString("session", seed) {
		t.Errorf("Hash must be deterministic for a seed")
	}
	if HashString("a", seed) == HashString("b", seed) {
		t.Errorf("Expected different hashes")
	}
	if HashString("a", 1) == HashString("a", 2) {
		t.Errorf("Expected the seed to change the hash")
	}
}

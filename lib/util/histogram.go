package util

import (
	"math"
	"sync"
)

// SizeHistogram tracks the distribution of sizes (in bytes) using exponential buckets.
// It is safe for concurrent use.
type SizeHistogram struct {
	mutex      sync.RWMutex
	boundaries []int   // upper bucket bounds, 16B to 64MB
	buckets    []int64 // len(boundaries)+1, the last bucket holds larger values
	count      int64
	sum        int64
}

// HistogramSummary is a point in time view of a SizeHistogram
type HistogramSummary struct {
	Count   int64 `json:"count"`
	Average int   `json:"average"`
	P50     int   `json:"p50"`
	P95     int   `json:"p95"`
	P99     int   `json:"p99"`
}

// NewSizeHistogram creates an empty histogram
func NewSizeHistogram() *SizeHistogram {
	boundaries := []int{
		16, 64, 256, 1024, 4096, // bytes
		16384, 65536, 262144, 1048576, // KB
		4194304, 16777216, 67108864, // MB
	}
	return &SizeHistogram{
		boundaries: boundaries,
		buckets:    make([]int64, len(boundaries)+1),
	}
}

// AddSample records a size
func (h *SizeHistogram) AddSample(size int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	bucket := len(h.boundaries)
	for i, boundary := range h.boundaries {
		if size <= boundary {
			bucket = i
			break
		}
	}

	h.buckets[bucket]++
	h.count++
	h.sum += int64(size)
}

// Count returns the number of samples
func (h *SizeHistogram) Count() int64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.count
}

// Average returns the mean of all samples
func (h *SizeHistogram) Average() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if h.count == 0 {
		return 0
	}
	return int(h.sum / h.count)
}

// Percentile estimates the given percentile (0-100) from the bucket bounds
func (h *SizeHistogram) Percentile(percentile int) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.percentile(percentile)
}

func (h *SizeHistogram) percentile(percentile int) int {
	if h.count == 0 || percentile < 0 || percentile > 100 {
		return 0
	}

	target := int64(math.Ceil(float64(h.count) * float64(percentile) / 100.0))
	var cumulative int64
	for i, count := range h.buckets {
		cumulative += count
		if cumulative < target {
			continue
		}
		switch {
		case i == 0:
			return h.boundaries[0] / 2
		case i < len(h.boundaries):
			return (h.boundaries[i-1] + h.boundaries[i]) / 2
		default:
			return h.boundaries[len(h.boundaries)-1] * 2
		}
	}
	return int(h.sum / h.count)
}

// Summary returns count, average and the common percentiles in one consistent read
func (h *SizeHistogram) Summary() HistogramSummary {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	s := HistogramSummary{
		Count: h.count,
		P50:   h.percentile(50),
		P95:   h.percentile(95),
		P99:   h.percentile(99),
	}
	if h.count > 0 {
		s.Average = int(h.sum / h.count)
	}
	return s
}

// Reset clears all samples
func (h *SizeHistogram) Reset() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.count = 0
	h.sum = 0
	for i := range h.buckets {
		h.buckets[i] = 0
	}
}

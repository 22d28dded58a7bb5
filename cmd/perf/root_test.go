package perf

import (
	"testing"

	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/ValentinKolb/rKV/lib/store/ostore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchmarkPathsResolve(t *testing.T) {
	perfKeySpread, perfDepth = 3, 4

	assert.Equal(t, "n0.n1.n2.leaf", innerPath())

	opts := store.DefaultOptions()
	opts.InitialData = deepRecord()
	s := ostore.NewObjectStore(opts)

	path := leafPaths()
	for i := 0; i < 2*perfKeySpread; i++ {
		v, ok := s.Get(path(i))
		require.True(t, ok, path(i))
		assert.Equal(t, i%perfKeySpread, v)
	}
	assert.Equal(t, "r1", recordIDs()(4))
}

func TestShouldSkip(t *testing.T) {
	perfSkip = []string{"get", "notify"}
	assert.True(t, shouldSkip("notify"))
	assert.False(t, shouldSkip("set"))
}

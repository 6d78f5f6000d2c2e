package memalign

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cost-notes/harness"
)

func BenchmarkFieldOrder(b *testing.B) {
	harness.Run(b, FieldOrderBenches(FieldOrderSizes))
}

func TestPadding(t *testing.T) {
	assert.Equal(t, uintptr(8), unsafe.Sizeof(Ordered{}))
	assert.Equal(t, uintptr(12), unsafe.Sizeof(Disordered{}))
}

func TestFillBytesPerOp(t *testing.T) {
	restore, err := harness.SetBenchTime("20x")
	require.NoError(t, err)
	t.Cleanup(restore)

	benches := FieldOrderBenches(harness.MustSizes(1024))
	require.Len(t, benches, 2)
	ordered := testing.Benchmark(benches[0].Fn)
	disordered := testing.Benchmark(benches[1].Fn)
	assert.Equal(t, int64(1), ordered.AllocsPerOp())
	assert.Equal(t, int64(1), disordered.AllocsPerOp())
	assert.Less(t, ordered.AllocedBytesPerOp(), disordered.AllocedBytesPerOp())
}

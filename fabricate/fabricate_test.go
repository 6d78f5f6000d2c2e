package fabricate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"go-cost-notes/harness"
)

func TestFabricateIsDeterministic(t *testing.T) {
	shapes := []Shape{ShapeBytes, ShapeStruct, ShapeString, ShapeMap, ShapeWords}
	for _, shape := range shapes {
		for _, n := range harness.MustSizes(0, 1, 17, 1000) {
			a, err := Fabricate(shape, n)
			require.NoError(t, err)
			b, err := Fabricate(shape, n)
			require.NoError(t, err)
			assert.Equal(t, a, b, "%v/%d", shape, n)
		}
	}
}

func TestFabricateRejectsBadInput(t *testing.T) {
	_, err := Fabricate(ShapeBytes, -1)
	assert.ErrorIs(t, err, harness.ErrNegativeSize)

	_, err = Fabricate(Shape(42), 1)
	assert.ErrorIs(t, err, ErrUnknownShape)
}

// 并发构造得到同样的结果，说明构造过程不依赖任何共享的可变状态
func TestFabricateHasNoSharedState(t *testing.T) {
	want := NewPayloadBig(512, 16, 16)
	results := make([]PayloadBig, 8)

	g, _ := errgroup.WithContext(context.Background())
	for i := range results {
		g.Go(func() error {
			results[i] = NewPayloadBig(512, 16, 16)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestContentIsNotConstant(t *testing.T) {
	b := Bytes(256)
	distinct := map[byte]struct{}{}
	for _, v := range b {
		distinct[v] = struct{}{}
	}
	assert.Greater(t, len(distinct), 64)

	w := Words(64)
	for i := 1; i < len(w); i++ {
		assert.NotEqual(t, w[i-1], w[i])
	}

	s := Strings(100)
	seen := map[string]struct{}{}
	for _, v := range s {
		seen[v] = struct{}{}
	}
	assert.Len(t, seen, 100)

	assert.Len(t, Text(33), 33)
	assert.Len(t, Map(50), 50)
}

func TestCloneIsDeep(t *testing.T) {
	p := NewPayload(64, 4, 4)
	c := p.Clone()
	assert.Equal(t, p, c)
	c.Data[0]++
	c.Tags[0] = "changed"
	c.Props["k0"]++
	assert.NotEqual(t, p.Data[0], c.Data[0])
	assert.NotEqual(t, p.Tags[0], c.Tags[0])
	assert.NotEqual(t, p.Props["k0"], c.Props["k0"])
	assert.Equal(t, p.Checksum(), c.Checksum())

	big := NewPayloadBig(64, 4, 4)
	bc := big.Clone()
	assert.Equal(t, big, bc)
	*bc.Opt[0] = "x"
	bc.Vecs[0][0]++
	assert.NotEqual(t, *big.Opt[0], *bc.Opt[0])
	assert.NotEqual(t, big.Vecs[0][0], bc.Vecs[0][0])

	s := NewSmall(3)
	sc := s.Clone()
	assert.Equal(t, s, sc)
	sc.J["k3"][0]++
	assert.NotEqual(t, s.J["k3"][0], sc.J["k3"][0])

	m := NewMedium(3)
	assert.Equal(t, m, m.Clone())

	l := NewLarge(3)
	lc := l.Clone()
	assert.Equal(t, l, lc)
	*lc.F++
	assert.NotEqual(t, *l.F, *lc.F)
}

func TestFixedSeed(t *testing.T) {
	assert.Equal(t, SearchTargets(1000, 32), SearchTargets(1000, 32))
	for _, v := range SearchTargets(10, 100) {
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 10)
	}
	assert.Empty(t, SearchTargets(0, 5))

	a := TinySizes(0xDEADBEEFCAFEBABE, 1000, 8)
	assert.Equal(t, a, TinySizes(0xDEADBEEFCAFEBABE, 1000, 8))
	for _, v := range a {
		assert.LessOrEqual(t, v, 8)
		assert.GreaterOrEqual(t, v, 0)
	}
}

package fabricate

import (
	"maps"
	"slices"
	"strconv"
)

// Small/Medium/Large 三档字段数量不同的记录，字段里混合了标量、字符串、切片和 map。
// 按值传递只拷贝 struct 本身（头部），深拷贝要把每个切片和 map 都复制一遍。

type Small struct {
	A int32
	B string
	C float64
	D []byte
	E map[string]int32
	F bool
	G *int32
	H []string
	I float32
	J map[string][]int32
}

func NewSmall(i int) Small {
	g := int32(Word(i))
	return Small{
		A: int32(i),
		B: "small_" + strconv.Itoa(i),
		C: float64(Word(i+1)) / 7,
		D: Bytes(3 + i%5),
		E: map[string]int32{key(i): int32(Word(i))},
		F: Word(i)&1 == 0,
		G: &g,
		H: Strings(2),
		I: float32(Word(i+2)) / 3,
		J: map[string][]int32{key(i): {int32(i), int32(i + 1)}},
	}
}

func (s *Small) Clone() Small {
	c := *s
	c.D = slices.Clone(s.D)
	c.E = maps.Clone(s.E)
	if s.G != nil {
		g := *s.G
		c.G = &g
	}
	c.H = slices.Clone(s.H)
	c.J = cloneSliceMap(s.J)
	return c
}

type Medium struct {
	A int32
	B string
	C float64
	D []byte
	E map[string]int32
	F int64
	G []int32
	H string
	I map[int32]string
	J float32
	K *int32
	L []float64
	M bool
	N []string
	O map[int64]float64
	P string
	Q []int32
	R []uint32
	S map[string][]byte
	T float64
}

func NewMedium(i int) Medium {
	k := int32(Word(i))
	return Medium{
		A: int32(i),
		B: "medium_" + strconv.Itoa(i),
		C: float64(Word(i)) / 11,
		D: Bytes(4 + i%7),
		E: map[string]int32{key(i): int32(i)},
		F: int64(Number(i)),
		G: []int32{int32(Word(i)), int32(Word(i + 1)), int32(Word(i + 2))},
		H: Text(13),
		I: map[int32]string{int32(i): "v" + strconv.Itoa(i)},
		J: float32(Word(i+3)) / 5,
		K: &k,
		L: []float64{float64(i), float64(i) + 0.5, float64(i) + 1},
		M: i%2 == 0,
		N: Strings(2),
		O: map[int64]float64{int64(i): float64(Word(i))},
		P: "String",
		Q: []int32{4, 5, 6},
		R: Words(3),
		S: map[string][]byte{key(i): Bytes(4)},
		T: 3.14159,
	}
}

func (m *Medium) Clone() Medium {
	c := *m
	c.D = slices.Clone(m.D)
	c.E = maps.Clone(m.E)
	c.G = slices.Clone(m.G)
	c.I = maps.Clone(m.I)
	if m.K != nil {
		k := *m.K
		c.K = &k
	}
	c.L = slices.Clone(m.L)
	c.N = slices.Clone(m.N)
	c.O = maps.Clone(m.O)
	c.Q = slices.Clone(m.Q)
	c.R = slices.Clone(m.R)
	c.S = cloneSliceMap(m.S)
	return c
}

type Large struct {
	A  int64
	B  float32
	C  string
	D  []uint32
	E  map[string][]byte
	F  *uint64
	G  int64
	H  []int32
	I  map[int32]string
	J  float64
	K  uint32
	L  []float64
	M  string
	N  map[int64]int32
	O  []string
	P  []int64
	Q  []byte
	R  map[string]string
	S  []uint32
	T  []int32
	U  float64
	V  string
	W  int32
	X  float32
	Y  int64
	Z  string
	AA []float32
	AB uint64
	AC map[string][]int32
	AD *string
	AE []string
	AF map[int64]float64
}

func NewLarge(i int) Large {
	f := Number(i)
	ad := "large_opt_" + strconv.Itoa(i)
	return Large{
		A:  int64(i),
		B:  float32(Word(i)) / 9,
		C:  "large_" + strconv.Itoa(i),
		D:  Words(3),
		E:  map[string][]byte{key(i): Bytes(3)},
		F:  &f,
		G:  int64(Number(i + 1)),
		H:  []int32{int32(i), int32(i + 1), int32(i + 2)},
		I:  map[int32]string{int32(i): "v" + strconv.Itoa(i)},
		J:  2.718,
		K:  Word(i + 4),
		L:  []float64{1, 2, 3},
		M:  Text(5),
		N:  map[int64]int32{int64(i): int32(Word(i))},
		O:  Strings(2),
		P:  []int64{int64(Number(i)), 2, 3},
		Q:  Bytes(3),
		R:  map[string]string{key(i): Text(8)},
		S:  Words(3),
		T:  []int32{4, 5, 6},
		U:  1.618,
		V:  Text(7),
		W:  int32(i),
		X:  float32(i) / 2,
		Y:  int64(Number(i + 2)),
		Z:  "z_" + strconv.Itoa(i),
		AA: []float32{1, 2, 3},
		AB: Number(i + 3),
		AC: map[string][]int32{key(i): {int32(i)}},
		AD: &ad,
		AE: Strings(3),
		AF: map[int64]float64{int64(i): float64(i) / 3},
	}
}

func (l *Large) Clone() Large {
	c := *l
	c.D = slices.Clone(l.D)
	c.E = cloneSliceMap(l.E)
	if l.F != nil {
		f := *l.F
		c.F = &f
	}
	c.H = slices.Clone(l.H)
	c.I = maps.Clone(l.I)
	c.L = slices.Clone(l.L)
	c.N = maps.Clone(l.N)
	c.O = slices.Clone(l.O)
	c.P = slices.Clone(l.P)
	c.Q = slices.Clone(l.Q)
	c.R = maps.Clone(l.R)
	c.S = slices.Clone(l.S)
	c.T = slices.Clone(l.T)
	c.AA = slices.Clone(l.AA)
	c.AC = cloneSliceMap(l.AC)
	if l.AD != nil {
		ad := *l.AD
		c.AD = &ad
	}
	c.AE = slices.Clone(l.AE)
	c.AF = maps.Clone(l.AF)
	return c
}

func cloneSliceMap[K comparable, E any](m map[K][]E) map[K][]E {
	if m == nil {
		return nil
	}
	out := make(map[K][]E, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

package performance

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"go-cost-notes/fabricate"
	"go-cost-notes/harness"
)

// PieceLen 每次拼接的片段长度
const PieceLen = 10

// 把 str 拼接 n 次。Go 里常见的几种写法:

//go:noinline
func PlusConcat(n int, str string) string {
	s := ""
	for i := 0; i < n; i++ {
		s += str
	}
	return s
}

//go:noinline
func SprintfConcat(n int, str string) string {
	s := ""
	for i := 0; i < n; i++ {
		s = fmt.Sprintf("%s%s", s, str)
	}
	return s
}

//go:noinline
func BuilderConcat(n int, str string) string {
	var builder strings.Builder
	for i := 0; i < n; i++ {
		builder.WriteString(str)
	}
	return builder.String()
}

//go:noinline
func BufferConcat(n int, s string) string {
	buf := new(bytes.Buffer)
	for i := 0; i < n; i++ {
		buf.WriteString(s)
	}
	return buf.String()
}

//go:noinline
func ByteConcat(n int, str string) string {
	var buf []byte
	for i := 0; i < n; i++ {
		buf = append(buf, str...)
	}
	return string(buf)
}

// PreByteConcat 长度可预知时预分配容量
//
//go:noinline
func PreByteConcat(n int, str string) string {
	buf := make([]byte, 0, n*len(str))
	for i := 0; i < n; i++ {
		buf = append(buf, str...)
	}
	return string(buf)
}

// PreBuilderConcat strings.Builder 用 Grow 预分配，String() 不再拷贝
//
//go:noinline
func PreBuilderConcat(n int, str string) string {
	var builder strings.Builder
	builder.Grow(n * len(str))
	for i := 0; i < n; i++ {
		builder.WriteString(str)
	}
	return builder.String()
}

func appendPieces(buf []byte, n int, str string) []byte {
	for i := 0; i < n; i++ {
		buf = append(buf, str...)
	}
	return buf
}

type ConcatVariant struct {
	Name string
	Fn   func(n int, str string) string
}

func (v ConcatVariant) String() string { return v.Name }

// Recycled 不产出 string，直接在复用的 []byte 上拼接
var Recycled = ConcatVariant{Name: "bytes-recycled"}

var (
	ConcatVariants = []ConcatVariant{
		{"plus", PlusConcat},
		{"sprintf", SprintfConcat},
		{"builder", BuilderConcat},
		{"bytes-buffer", BufferConcat},
		{"byte-append", ByteConcat},
		{"byte-prealloc", PreByteConcat},
		{"builder-grow", PreBuilderConcat},
		Recycled,
	}
	ConcatSizes = harness.MustSizes(10, 100, 1000)
)

// ConcatBenches 规模是片段个数。plus 和 sprintf 是 O(N^2) 的拷贝，最大规模下只做对照。
func ConcatBenches(sizes []harness.SizeClass) []harness.Bench {
	str := fabricate.Text(PieceLen)
	return harness.Expand("string_concat", harness.UnitElements, ConcatVariants, sizes,
		func(v ConcatVariant, n harness.SizeClass) func(b *testing.B) {
			if v.Fn == nil {
				buf := harness.NewSliceBuffer[byte](n * PieceLen)
				return harness.Recycle(buf,
					func(s []byte) []byte { return appendPieces(s, harness.Observe(n.Int()), harness.Observe(str)) },
					func(s []byte) []byte { harness.Consume(len(s)); return s })
			}
			return harness.Plain(func() { harness.Consume(v.run(n.Int(), str)) })
		})
}

// run 调用一次，片段个数和片段本身都经过屏障
func (v ConcatVariant) run(n int, str string) string {
	return v.Fn(harness.Observe(n), harness.Observe(str))
}

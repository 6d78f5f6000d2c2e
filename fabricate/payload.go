package fabricate

import (
	"maps"
	"slices"
	"strconv"
)

// Payload 在层与层之间流转的典型业务对象
type Payload struct {
	ID    uint64
	Name  string
	Data  []byte
	Tags  []string
	Props map[string]uint32
}

// NewPayload 每个字段独立构造，不从已有对象拷贝
func NewPayload(bytes, ntags, keyspace int) Payload {
	return Payload{
		ID:    42,
		Name:  "example_" + strconv.Itoa(bytes) + "_" + strconv.Itoa(ntags) + "_" + strconv.Itoa(keyspace),
		Data:  Bytes(bytes),
		Tags:  Strings(ntags),
		Props: Map(keyspace),
	}
}

// Clone 深拷贝
func (p *Payload) Clone() Payload {
	return Payload{
		ID:    p.ID,
		Name:  p.Name,
		Data:  slices.Clone(p.Data),
		Tags:  slices.Clone(p.Tags),
		Props: maps.Clone(p.Props),
	}
}

// Checksum 读遍所有字段的长度，消费者用它证明数据被用过
func (p *Payload) Checksum() uint64 {
	acc := p.ID ^ uint64(len(p.Name))
	acc ^= uint64(len(p.Data))
	acc ^= uint64(len(p.Tags))
	acc ^= uint64(len(p.Props))
	return acc
}

// PayloadBig 字段很多的大对象: 按值传递时头部拷贝本身就有可观的成本
type PayloadBig struct {
	ID      uint64
	Name    string
	Email   string
	Address string
	Notes   string
	Phone   string
	Company string
	Tags    []string
	Data    []byte
	Meta    map[string]uint64
	Props   map[string]uint32
	Numbers []uint64
	Flags   []bool
	Codes   []string
	Desc    [5]string
	Vecs    [5][]byte
	Opt     [5]*string
	OptNum  *uint64
}

func NewPayloadBig(bytes, ntags, keyspace int) PayloadBig {
	meta := make(map[string]uint64, keyspace)
	props := make(map[string]uint32, keyspace)
	for i := range keyspace {
		meta["meta"+strconv.Itoa(i)] = Number(i)
		props["prop"+strconv.Itoa(i)] = Word(i)
	}
	p := PayloadBig{
		ID:      99,
		Name:    "name_" + strconv.Itoa(bytes) + "_" + strconv.Itoa(ntags) + "_" + strconv.Itoa(keyspace),
		Email:   "user@example.com",
		Address: "Street 1, City",
		Notes:   Text(16),
		Phone:   "+123456789",
		Company: "ACME",
		Tags:    Strings(ntags),
		Data:    Bytes(bytes),
		Meta:    meta,
		Props:   props,
		Numbers: []uint64{Number(1), Number(2), Number(3), Number(4), Number(5)},
		Flags:   []bool{true, false, true},
		Codes:   []string{"A", "B", "C"},
	}
	for i := range p.Desc {
		p.Desc[i] = "d" + strconv.Itoa(i+1)
		p.Vecs[i] = []byte{Byte(3 * i), Byte(3*i + 1), Byte(3*i + 2)}
		opt := "opt" + strconv.Itoa(i+1)
		p.Opt[i] = &opt
	}
	n := Number(123456)
	p.OptNum = &n
	return p
}

func (p *PayloadBig) Clone() PayloadBig {
	c := *p
	c.Tags = slices.Clone(p.Tags)
	c.Data = slices.Clone(p.Data)
	c.Meta = maps.Clone(p.Meta)
	c.Props = maps.Clone(p.Props)
	c.Numbers = slices.Clone(p.Numbers)
	c.Flags = slices.Clone(p.Flags)
	c.Codes = slices.Clone(p.Codes)
	for i := range p.Vecs {
		c.Vecs[i] = slices.Clone(p.Vecs[i])
		if p.Opt[i] != nil {
			v := *p.Opt[i]
			c.Opt[i] = &v
		}
	}
	if p.OptNum != nil {
		v := *p.OptNum
		c.OptNum = &v
	}
	return c
}

func (p *PayloadBig) Checksum() uint64 {
	acc := p.ID ^ uint64(len(p.Name))
	acc ^= uint64(len(p.Data))
	acc ^= uint64(len(p.Tags))
	acc ^= uint64(len(p.Props))
	acc ^= uint64(len(p.Meta))
	acc ^= uint64(len(p.Codes))
	return acc
}

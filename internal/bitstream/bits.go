package bitstream

import (
	"fmt"
	"strings"
)

// Bits is a packed, fixed-length bit vector. Bit 0 is the first memory bit
// of the multiplexer.
type Bits struct {
	n     int
	bytes []byte
}

// NewBits packs values into a bit vector.
func NewBits(values []bool) Bits {
	b := Bits{n: len(values), bytes: make([]byte, (len(values)+7)/8)}
	for i, v := range values {
		if v {
			b.bytes[i>>3] |= 1 << uint(i&7)
		}
	}
	return b
}

// Len is the number of bits.
func (b Bits) Len() int { return b.n }

// Get returns bit i. Reading past the end returns false.
func (b Bits) Get(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return b.bytes[i>>3]&(1<<uint(i&7)) != 0
}

// Bools unpacks the vector.
func (b Bits) Bools() []bool {
	out := make([]bool, b.n)
	for i := range out {
		out[i] = b.Get(i)
	}
	return out
}

// String renders the bits as 0/1 text, bit 0 first.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		if b.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Hex renders the packed bytes, least significant bit first within a byte.
func (b Bits) Hex() string {
	return fmt.Sprintf("%x", b.bytes)
}

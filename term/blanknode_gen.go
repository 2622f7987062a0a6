package term

import "github.com/google/uuid"

// NewBlankNodeUnique mints a freshly generated blank node with a unique
// 64-bit hex identifier, derived from a uuid.New() value's first 8 bytes.
func NewBlankNodeUnique() BlankNode {
	id := uuid.New()
	return BlankNode{ID: hexEncode(id[:8])}
}

const hexDigits = "0123456789abcdef"

func hexEncode(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0x0f]
	}
	return string(out)
}

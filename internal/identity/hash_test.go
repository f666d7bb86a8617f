package identity

import "github.com/cespare/xxhash/v2"

func xxhashLow32(s string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(s)
	return d.Sum64() & 0xffffffff
}

package transaction

import (
	"github.com/mr-tron/base58"
	"github.com/zeebo/blake3"
)

// fingerprint identifies a canonical record in local history. It is not the
// network transaction hash, which the signer derives from its own encoding.
func fingerprint(b []byte) string {
	h := blake3.New()
	h.Write(b)
	out := make([]byte, 32)
	h.Sum(out[:0])
	return base58.Encode(out)
}

package simulation

import (
	"encoding/binary"
	"math/rand"

	"lukechampine.com/blake3"
)

// DeriveSource expands one seed into an independent deterministic rand stream.
// Lanes separate the streams (seat, grid row, grid column) so that concurrent
// matches draw from unrelated sequences no matter how they are scheduled.
func DeriveSource(seed uint64, lanes ...uint64) *rand.Rand {
	buf := make([]byte, 8*(len(lanes)+1))
	binary.BigEndian.PutUint64(buf, seed)
	for i, lane := range lanes {
		binary.BigEndian.PutUint64(buf[8*(i+1):], lane)
	}
	sum := blake3.Sum256(buf)
	return rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(sum[:8]))))
}

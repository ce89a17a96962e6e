package repository

import (
	"bytes"

	"github.com/google/uuid"
)

// Pair is the canonical key for unordered two-identity state
// (connections, conversations): Lo sorts before Hi byte-wise. Locking
// and storage by Pair means both orderings of the same two identities
// land on the same record.
type Pair struct {
	Lo, Hi uuid.UUID
}

func OrderPair(a, b uuid.UUID) Pair {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return Pair{Lo: a, Hi: b}
	}
	return Pair{Lo: b, Hi: a}
}

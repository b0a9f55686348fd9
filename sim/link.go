package sim

import "fmt"

// LinkKey addresses a link by its unordered pair of endpoints.
// The smaller node id is always stored first, so (A,B) and (B,A) are equal.
type LinkKey struct {
	A, B int
}

// NewLinkKey returns the canonical key for the pair (a, b).
func NewLinkKey(a, b int) LinkKey {
	if a > b {
		a, b = b, a
	}
	return LinkKey{A: a, B: b}
}

func (k LinkKey) String() string {
	return fmt.Sprintf("%d-%d", k.A, k.B)
}

// Contains reports whether n is one of the endpoints.
func (k LinkKey) Contains(n int) bool {
	return k.A == n || k.B == n
}

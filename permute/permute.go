// Package permute deterministically reorders a fixed-size index range each
// subiteration, so PGS solves don't always relax constraints in the same
// order (which biases convergence toward whichever constraint goes first)
// while staying fully reproducible given the same permutation index.
package permute

// primes is a table of primes just above the largest active-joint-list size
// the solver supports (350,000,041, per the mapper's n bound). Because
// every prime here exceeds any valid n, gcd(prime, n) is always 1 for n <
// prime — the linear map (i*prime + offset) mod n is therefore always a
// bijection on [0, n), regardless of which table entry the current index
// selects.
var primes = [...]int64{
	350000059, 350000069, 350000071, 350000081, 350000087,
	350000089, 350000111, 350000113, 350000129, 350000141,
}

// Mapper produces a deterministic bijection [0, n) -> [0, n) for a given
// permutation index: two mappers set to the same index produce identical
// sequences for any n.
type Mapper struct {
	permutationIndex int64
	currentOffset    int64
	currentPrime     int64
}

// New creates a Mapper at permutation index 0.
func New() *Mapper {
	m := &Mapper{}
	m.SetIndex(0)
	return m
}

// SetIndex reseeds the mapper's offset and prime from index k.
func (m *Mapper) SetIndex(k int64) {
	m.permutationIndex = k
	m.currentPrime = primes[((k%int64(len(primes)))+int64(len(primes)))%int64(len(primes))]
	m.currentOffset = k
}

// Index returns the mapper's current permutation index.
func (m *Mapper) Index() int64 { return m.permutationIndex }

// GetMappedIndex returns the permuted position of i within [0, n) under the
// mapper's current index. Requires 0 <= i < n and n < 350_000_041.
func (m *Mapper) GetMappedIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	mapped := (int64(i)*m.currentPrime + m.currentOffset) % int64(n)
	if mapped < 0 {
		mapped += int64(n)
	}
	return int(mapped)
}

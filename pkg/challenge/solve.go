package challenge

import "math/big"

var one = big.NewInt(1)

// Solve performs the sequential derivation that makes the puzzle a
// time-lock: starting from y = x, it computes y = y^((p+1)/4) mod p
// exactly t times. Each round is a full modular exponentiation over the
// ~2048-bit modulus and must complete before the next begins, so the
// wall-clock cost is proportional to t. The rounds of a single challenge
// must not be parallelized; independent challenges may be solved
// concurrently.
//
// Solve is a blocking, CPU-bound call that can run from milliseconds to
// many seconds depending on t. Run it off any latency-sensitive
// goroutine. It touches no shared state and is deterministic: the same
// challenge always yields the same solution.
//
// Solve does not validate p. A malformed modulus (even, or not ≡ 3 mod 4)
// produces whatever the formula yields; well-formedness is the issuing
// server's responsibility.
func (c *Challenge) Solve() *Solution {
	p := c.P()
	t := c.T()

	// e = (p+1)/4, constant across rounds.
	e := new(big.Int).Add(p, one)
	e.Rsh(e, 2)

	y := c.X()
	for i := uint32(0); i < t; i++ {
		y = new(big.Int).Exp(y, e, p)
	}

	return &Solution{challenge: c, y: y}
}

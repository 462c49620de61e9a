package challenge

import (
	"math/big"
	"testing"
)

func mustDecode(t *testing.T, data []byte) *Challenge {
	t.Helper()
	c, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return c
}

func TestSolveKnownVector(t *testing.T) {
	// p = 11 ≡ 3 (mod 4), x = 9 is a quadratic residue mod 11.
	// e = (11+1)/4 = 3, so y = 9^3 mod 11 = 729 mod 11 = 3.
	c := mustDecode(t, buildChallenge(big.NewInt(9), big.NewInt(11), 1, 4, []byte{127, 0, 0, 1}))
	y := c.Solve().Y()
	if y.Cmp(big.NewInt(3)) != 0 {
		t.Errorf("Solve() y = %v, want 3", y)
	}
}

func TestSolveTwoRounds(t *testing.T) {
	// Round 1: 9^3 mod 11 = 3. Round 2: 3^3 mod 11 = 5.
	c := mustDecode(t, buildChallenge(big.NewInt(9), big.NewInt(11), 2, 4, []byte{127, 0, 0, 1}))
	y := c.Solve().Y()
	if y.Cmp(big.NewInt(5)) != 0 {
		t.Errorf("Solve() y = %v, want 5", y)
	}
}

func TestSolveZeroRounds(t *testing.T) {
	x := new(big.Int).Lsh(big.NewInt(0x1234abcd), 100)
	c := mustDecode(t, buildChallenge(x, big.NewInt(11), 0, 4, []byte{127, 0, 0, 1}))
	y := c.Solve().Y()
	if y.Cmp(x) != 0 {
		t.Errorf("Solve() with t=0 y = %v, want x = %v", y, x)
	}
}

func TestSolveLargeModulus(t *testing.T) {
	// 2^89-1 is a Mersenne prime and ≡ 3 (mod 4).
	p := new(big.Int).Lsh(big.NewInt(1), 89)
	p.Sub(p, big.NewInt(1))
	x := big.NewInt(123456789)
	const rounds = 5

	c := mustDecode(t, buildChallenge(x, p, rounds, 4, []byte{127, 0, 0, 1}))
	got := c.Solve().Y()

	e := new(big.Int).Rsh(new(big.Int).Add(p, big.NewInt(1)), 2)
	want := new(big.Int).Set(x)
	for i := 0; i < rounds; i++ {
		want.Exp(want, e, p)
	}
	if got.Cmp(want) != 0 {
		t.Errorf("Solve() y = %v, want %v", got, want)
	}
}

func TestSolveDeterministic(t *testing.T) {
	data := buildChallenge(big.NewInt(4), big.NewInt(19), 7, 4, []byte{10, 1, 2, 3})
	c := mustDecode(t, data)
	first := c.Solve().Y()
	second := c.Solve().Y()
	if first.Cmp(second) != 0 {
		t.Errorf("Solve() not deterministic: %v vs %v", first, second)
	}

	other := mustDecode(t, data)
	third := other.Solve().Y()
	if first.Cmp(third) != 0 {
		t.Errorf("Solve() differs across decodes of the same bytes: %v vs %v", first, third)
	}
}

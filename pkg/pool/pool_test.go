package pool

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duckity/go-duckity/pkg/challenge"
)

func testChallenge(t *testing.T, x int64, rounds uint32) *challenge.Challenge {
	t.Helper()
	raw := make([]byte, challenge.ChallengeSize)
	big.NewInt(x).FillBytes(raw[32:64])
	big.NewInt(11).FillBytes(raw[64:320])
	raw[323] = byte(rounds)
	raw[340] = 4
	copy(raw[341:345], []byte{127, 0, 0, 1})
	c, err := challenge.Decode(raw)
	require.NoError(t, err)
	return c
}

func TestPoolSolvesBatch(t *testing.T) {
	r := require.New(t)

	challenges := make([]*challenge.Challenge, 8)
	for i := range challenges {
		challenges[i] = testChallenge(t, 9, 1)
	}

	p := New(3, nil)
	results := p.Solve(challenges)
	r.Len(results, len(challenges))
	r.EqualValues(len(challenges), p.Solved())

	// p=11, x=9, t=1 → y=3 for every entry.
	for i, res := range results {
		r.NotNil(res.Solution, "challenge %d not solved", i)
		r.Equal(i, res.Index)
		r.Zero(res.Solution.Y().Cmp(big.NewInt(3)))
	}
}

func TestPoolDefaultsWorkerCount(t *testing.T) {
	r := require.New(t)
	p := New(0, nil)
	r.Positive(p.workers)

	results := p.Solve([]*challenge.Challenge{testChallenge(t, 9, 2)})
	r.NotNil(results[0].Solution)
	r.Zero(results[0].Solution.Y().Cmp(big.NewInt(5)))
}

func TestPoolStopBeforeSolve(t *testing.T) {
	r := require.New(t)

	p := New(2, nil)
	p.Stop()
	p.Stop() // idempotent

	results := p.Solve([]*challenge.Challenge{testChallenge(t, 9, 1), testChallenge(t, 4, 1)})
	r.Len(results, 2)
	for _, res := range results {
		r.Nil(res.Solution)
	}
	r.Zero(p.Solved())
}

func TestPoolEmptyBatch(t *testing.T) {
	r := require.New(t)
	results := New(4, nil).Solve(nil)
	r.Empty(results)
}

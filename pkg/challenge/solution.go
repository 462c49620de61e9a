package challenge

import (
	"math/big"

	cristalbase64 "github.com/cristalhq/base64"
)

// Solution is the result of solving a challenge. It keeps the original
// challenge so the full 397-byte body can round-trip, unmodified, into
// the encoded token. Immutable after construction.
type Solution struct {
	challenge *Challenge
	y         *big.Int
}

// Challenge returns the challenge this solution was computed from.
func (s *Solution) Challenge() *Challenge {
	return s.challenge
}

// Y returns a copy of the computed result value.
func (s *Solution) Y() *big.Int {
	return new(big.Int).Set(s.y)
}

// Encode serializes the solution: the original challenge body followed
// by the minimal big-endian bytes of y. Encoding cannot fail.
func (s *Solution) Encode() []byte {
	yBytes := s.y.Bytes()
	buf := make([]byte, 0, ChallengeSize+len(yBytes))
	buf = append(buf, s.challenge.raw...)
	buf = append(buf, yBytes...)
	return buf
}

// EncodeToString returns the solution as an unpadded base64url token,
// the form the validation endpoint accepts.
func (s *Solution) EncodeToString() string {
	return cristalbase64.RawURLEncoding.EncodeToString(s.Encode())
}

// RawSize reports the encoded byte length before the base64 transform.
func (s *Solution) RawSize() int {
	return ChallengeSize + len(s.y.Bytes())
}

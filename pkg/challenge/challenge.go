package challenge

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math/big"
	"net"

	"golang.org/x/crypto/sha3"
)

// ChallengeSize is the exact size of a Duckity challenge in bytes.
const ChallengeSize = 397

// Challenge wire layout (big-endian, half-open byte ranges):
//
//	[0,32)    header, opaque
//	[32,64)   x, puzzle base
//	[64,320)  p, puzzle modulus
//	[320,324) t, hardness (rounds)
//	[324,340) reserved, opaque
//	[340,341) ip version tag (4 or 6)
//	[341,357) ip address slot (4 or 16 bytes used)
//	[357,397) trailer, opaque
const (
	xOffset  = 32
	pOffset  = 64
	tOffset  = 320
	ipOffset = 340
	ipSlot   = 16
)

// Errors
var (
	ErrInvalidLength        = errors.New("challenge must be exactly 397 bytes")
	ErrUnsupportedIPVersion = errors.New("challenge IP version tag is neither 4 nor 6")
)

// Challenge is a server-issued time-lock puzzle. It is immutable after
// Decode; the header, reserved, and trailer regions are never interpreted
// and round-trip verbatim into the encoded solution.
type Challenge struct {
	raw []byte
}

// Decode parses a raw challenge body as returned by the server.
// The input is copied, so the caller may reuse its buffer.
func Decode(data []byte) (*Challenge, error) {
	if len(data) != ChallengeSize {
		return nil, ErrInvalidLength
	}
	raw := make([]byte, ChallengeSize)
	copy(raw, data)
	return &Challenge{raw: raw}, nil
}

// X returns the puzzle base value from bytes [32,64).
func (c *Challenge) X() *big.Int {
	return new(big.Int).SetBytes(c.raw[xOffset:pOffset])
}

// P returns the puzzle modulus from bytes [64,320). The server issues a
// prime p ≡ 3 (mod 4); the client does not verify this.
func (c *Challenge) P() *big.Int {
	return new(big.Int).SetBytes(c.raw[pOffset:tOffset])
}

// T returns the hardness: the number of sequential squaring rounds.
func (c *Challenge) T() uint32 {
	return binary.BigEndian.Uint32(c.raw[tOffset : tOffset+4])
}

// IP returns the client IP address the challenge was issued for. The
// version tag selects how much of the 16-byte address slot is meaningful.
func (c *Challenge) IP() (net.IP, error) {
	slot := c.raw[ipOffset+1 : ipOffset+1+ipSlot]
	switch c.raw[ipOffset] {
	case 4:
		return net.IPv4(slot[0], slot[1], slot[2], slot[3]), nil
	case 6:
		ip := make(net.IP, net.IPv6len)
		copy(ip, slot)
		return ip, nil
	default:
		return nil, ErrUnsupportedIPVersion
	}
}

// Bytes returns a copy of the raw 397-byte challenge body.
func (c *Challenge) Bytes() []byte {
	raw := make([]byte, ChallengeSize)
	copy(raw, c.raw)
	return raw
}

// Fingerprint returns a short hex digest of the raw challenge body,
// for correlating log lines. It is never sent to the server.
func (c *Challenge) Fingerprint() string {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(c.raw)
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

package engine

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	mrand "math/rand"
	"os"
	"time"
)

// DeckSize is the number of distinct cards.
const DeckSize = NumRanks * NumSuits

var ErrDealSize = errors.New("deal size must be between 0 and 52")

// Source supplies uniform integers in [0, n). *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a pseudo-random source. Seed 0 picks a fresh seed.
// The result is not safe for concurrent use; give each goroutine its own.
func NewSource(seed int64) *mrand.Rand {
	if seed == 0 {
		seed = int64(SecureSeed())
	}
	return mrand.New(mrand.NewSource(seed))
}

// Deal draws n distinct cards by picking a random rank and suit and
// rejecting repeats. Cards are returned in draw order.
func Deal(src Source, n int) (Hand, error) {
	if n < 0 || n > DeckSize {
		return nil, ErrDealSize
	}
	h := make(Hand, 0, n)
	for len(h) < n {
		suit := Suit(src.Intn(NumSuits))
		rank := Rank(src.Intn(NumRanks))
		c := Card{Rank: rank, Suit: suit}
		if !h.Contains(c) {
			h = append(h, c)
		}
	}
	return h, nil
}

// SeedStream derives a sequence of well-mixed seeds from one base (splitmix64).
type SeedStream struct{ state uint64 }

func NewSeedStream(base uint64) *SeedStream { return &SeedStream{state: base} }

func (s *SeedStream) Next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return z
}

func SecureSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err == nil {
		return binary.LittleEndian.Uint64(b[:]) ^ uint64(time.Now().UnixNano()) ^ uint64(os.Getpid())
	}
	return uint64(time.Now().UnixNano()) ^ 0xA5A5A5A5A5A5A5A5
}

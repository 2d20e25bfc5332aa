// Package faker is the default random source for the generator. A Faker is
// fully determined by its seed and clock, so fixtures generated with the same
// seed and time are identical.
package faker

import (
	crand "crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxNumber   = 99999
	alphaNum    = "abcdefghijklmnopqrstuvwxyz0123456789"
	futureRange = 365 * 24 * time.Hour
)

// Faker produces random primitives from a seeded ChaCha8 stream.
// It is not safe for concurrent use; give each goroutine its own Faker.
type Faker struct {
	stream *mathrand.ChaCha8
	rng    *mathrand.Rand
	now    func() time.Time
}

type Option func(*Faker)

// WithClock sets the reference time for FutureTime.
func WithClock(now func() time.Time) Option {
	return func(f *Faker) { f.now = now }
}

// New returns a Faker seeded with seed.
func New(seed uint64, opts ...Option) *Faker {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return newFaker(key, opts...)
}

// NewRandom returns a Faker seeded from crypto/rand.
func NewRandom(opts ...Option) *Faker {
	var key [32]byte
	_, _ = crand.Read(key[:])
	return newFaker(key, opts...)
}

func newFaker(key [32]byte, opts ...Option) *Faker {
	stream := mathrand.NewChaCha8(key)
	f := &Faker{
		stream: stream,
		rng:    mathrand.New(stream),
		now:    time.Now,
	}
	for _, fn := range opts {
		fn(f)
	}
	return f
}

func (f *Faker) Word() string {
	return words[f.rng.IntN(len(words))]
}

func (f *Faker) Noun() string {
	return nouns[f.rng.IntN(len(nouns))]
}

func (f *Faker) Bool() bool {
	return f.rng.IntN(2) == 1
}

// IntRange returns a whole number in [lo, hi]. hi below lo yields lo.
// Any lo <= hi is accepted, including the full int range.
func (f *Faker) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	span := uint64(uint(hi-lo)) + 1
	if span == 0 {
		return int(f.rng.Uint64())
	}
	return lo + int(f.rng.Uint64N(span))
}

func (f *Faker) Number() int64 {
	return f.rng.Int64N(maxNumber + 1)
}

// Float returns a real number in [0, 99999] with two decimal places.
func (f *Faker) Float() float64 {
	return decimal.NewFromFloat(f.rng.Float64() * maxNumber).Round(2).InexactFloat64()
}

// FutureTime returns an instant within a year after the clock's now,
// truncated to milliseconds.
func (f *Faker) FutureTime() time.Time {
	offset := time.Millisecond + time.Duration(f.rng.Int64N(int64(futureRange)))
	return f.now().Add(offset).Truncate(time.Millisecond)
}

func (f *Faker) UUID() string {
	id, err := uuid.NewRandomFromReader(f.stream)
	if err != nil {
		// ChaCha8.Read never fails; fall back to the global source regardless.
		return uuid.NewString()
	}
	return id.String()
}

func (f *Faker) AlphaNumeric(n int) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteByte(alphaNum[f.rng.IntN(len(alphaNum))])
	}
	return sb.String()
}

func (f *Faker) Pick(n int) int {
	if n <= 0 {
		return -1
	}
	return f.rng.IntN(n)
}

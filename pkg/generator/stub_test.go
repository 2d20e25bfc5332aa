package generator

import (
	"strings"
	"time"
)

var stubTime = time.Date(2026, time.March, 4, 5, 6, 7, 89_000_000, time.UTC)

const stubUUID = "5b3c8a4e-2f51-4c1d-9e7a-0d6b2f8c1a93"

// stubSource returns fixed values. IntRange answers with the upper bound
// unless atMin is set, and records every range it was asked for.
type stubSource struct {
	pick   int
	atMin  bool
	nouns  []string
	next   int
	ranges [][2]int
}

func (s *stubSource) Word() string { return "word" }

func (s *stubSource) Noun() string {
	if len(s.nouns) == 0 {
		return "node"
	}
	n := s.nouns[s.next%len(s.nouns)]
	s.next++
	return n
}

func (s *stubSource) Bool() bool { return true }

func (s *stubSource) IntRange(lo, hi int) int {
	s.ranges = append(s.ranges, [2]int{lo, hi})
	if s.atMin || hi < lo {
		return lo
	}
	return hi
}

func (s *stubSource) Number() int64         { return 42 }
func (s *stubSource) Float() float64        { return 12.34 }
func (s *stubSource) FutureTime() time.Time { return stubTime }
func (s *stubSource) UUID() string          { return stubUUID }

func (s *stubSource) AlphaNumeric(n int) string { return strings.Repeat("a", n) }

func (s *stubSource) Pick(n int) int {
	if n <= 0 {
		return -1
	}
	return min(s.pick, n-1)
}

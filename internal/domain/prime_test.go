package domain_test

import (
	"testing"

	"github.com/istinmth/dobble-generator/internal/domain"
)

var primesTo100 = map[int]bool{
	2: true, 3: true, 5: true, 7: true, 11: true, 13: true, 17: true,
	19: true, 23: true, 29: true, 31: true, 37: true, 41: true, 43: true,
	47: true, 53: true, 59: true, 61: true, 67: true, 71: true, 73: true,
	79: true, 83: true, 89: true, 97: true,
}

func TestIsPrime_UpTo100(t *testing.T) {
	for n := 0; n <= 100; n++ {
		if got := domain.IsPrime(n); got != primesTo100[n] {
			t.Errorf("IsPrime(%d) = %v, want %v", n, got, primesTo100[n])
		}
	}
}

func TestIsPrime_Boundaries(t *testing.T) {
	for _, n := range []int{0, 1, -1, -7} {
		if domain.IsPrime(n) {
			t.Errorf("IsPrime(%d) = true, want false", n)
		}
	}
}

func TestNextPrime(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-5, 2},
		{0, 2},
		{2, 2},
		{3, 3},
		{4, 5},
		{8, 11},
		{13, 13},
		{14, 17},
		{90, 97},
	}
	for _, c := range cases {
		if got := domain.NextPrime(c.in); got != c.want {
			t.Errorf("NextPrime(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNextPrime_Properties(t *testing.T) {
	prev := 2
	for n := 3; n <= 200; n++ {
		p := domain.NextPrime(n)
		if p < n {
			t.Errorf("NextPrime(%d) = %d, below input", n, p)
		}
		if !domain.IsPrime(p) {
			t.Errorf("NextPrime(%d) = %d, not prime", n, p)
		}
		if p < prev {
			t.Errorf("NextPrime not non-decreasing at %d: %d < %d", n, p, prev)
		}
		prev = p
	}
}

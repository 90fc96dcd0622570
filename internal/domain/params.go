package domain

import "math"

// SolveParams picks the smallest prime plane order whose plane holds at
// least nSymbols symbols, by solving n²+n+1 >= nSymbols and advancing
// to the next prime when the root is composite.
//
// Requests for 1 or fewer symbols floor at order 2 (7 symbols, 7
// cards): orders 0 and 1 are not prime and have no plane.
func SolveParams(nSymbols int) (PlaneParams, error) {
	order := 2
	if nSymbols > 1 {
		// n² + n + (1 - nSymbols) >= 0, smallest integer n at or above
		// the positive root.
		disc := 1 - 4*(1-nSymbols)
		if disc < 0 {
			order = int(math.Sqrt(float64(nSymbols - 1)))
		} else {
			root := (-1 + math.Sqrt(float64(disc))) / 2
			order = int(math.Ceil(root))
		}
		if !IsPrime(order) {
			order = NextPrime(order)
		}
	}

	p := PlaneParams{
		Order:          order,
		SymbolsPerCard: order + 1,
		TotalCards:     order*order + order + 1,
	}
	if !IsPrime(p.Order) || p.TotalCards < nSymbols {
		return PlaneParams{}, ErrNoValidOrder
	}
	return p, nil
}

package domain

// IsPrime reports whether n is prime, using 6k±1 trial division.
func IsPrime(n int) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := 5; i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// NextPrime returns the smallest prime >= n. Primes are infinite, so
// this terminates for any finite n.
func NextPrime(n int) int {
	if n <= 2 {
		return 2
	}
	p := n
	if p%2 == 0 {
		p++
	}
	for !IsPrime(p) {
		p += 2
	}
	return p
}

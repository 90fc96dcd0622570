package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
	// Float64 returns a random float64 in [0, 1).
	Float64() float64
}

// PlaneParams describes the finite projective plane backing a deck.
// For a plane of order n each card carries n+1 symbols and the deck
// holds n²+n+1 cards drawn from n²+n+1 symbols.
type PlaneParams struct {
	Order          int `json:"order"`
	SymbolsPerCard int `json:"symbols_per_card"`
	TotalCards     int `json:"total_cards"`
}

// Deck is a verified set of cards: any two cards share exactly one
// symbol. Symbols are dense ids in [0, TotalSymbols). Card order and
// within-card symbol order matter only for display.
type Deck struct {
	Cards        [][]int
	TotalSymbols int
	Params       PlaneParams
}

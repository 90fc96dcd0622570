package domain

import (
	"fmt"
	"sort"
)

// GenerateDeck builds a verified deck of cards whose symbol pool covers
// at least nSymbols symbols. With shuffle false the result is
// deterministic; with shuffle true the within-card symbol order is
// permuted using rng. A nil rng disables shuffling.
func GenerateDeck(nSymbols int, shuffle bool, rng RNG) (Deck, error) {
	params, err := SolveParams(nSymbols)
	if err != nil {
		return Deck{}, fmt.Errorf("solve params: %w", err)
	}

	lines, err := ConstructPlane(params.Order)
	if err != nil {
		return Deck{}, fmt.Errorf("construct plane: %w", err)
	}

	deck, err := AssembleDeck(lines, shuffle, rng)
	if err != nil {
		return Deck{}, err
	}
	deck.Params = params
	return deck, nil
}

// AssembleDeck turns plane lines into cards: raw point indices are
// remapped to a dense 0..k-1 range (ascending raw order, for
// determinism) and, when shuffle is set, the display order within each
// card is permuted. The deck is verified before it is returned; a
// failure there is a construction bug, never a recoverable condition.
func AssembleDeck(lines [][]int, shuffle bool, rng RNG) (Deck, error) {
	used := make(map[int]bool)
	for _, line := range lines {
		for _, p := range line {
			used[p] = true
		}
	}
	raw := make([]int, 0, len(used))
	for p := range used {
		raw = append(raw, p)
	}
	sort.Ints(raw)

	remap := make(map[int]int, len(raw))
	for id, p := range raw {
		remap[p] = id
	}

	cards := make([][]int, len(lines))
	for i, line := range lines {
		card := make([]int, len(line))
		for j, p := range line {
			card[j] = remap[p]
		}
		sort.Ints(card)
		if shuffle {
			shuffleInts(card, rng)
		}
		cards[i] = card
	}

	if err := VerifyDeck(cards); err != nil {
		return Deck{}, err
	}

	return Deck{Cards: cards, TotalSymbols: len(raw)}, nil
}

// VerifyDeck checks the pairwise single-intersection property across
// the whole deck. O(m²·s) for m cards of size s; decks top out at a few
// hundred cards for realistic inputs, so the exhaustive check stays
// cheap.
func VerifyDeck(cards [][]int) error {
	sets := make([]map[int]bool, len(cards))
	for i, card := range cards {
		set := make(map[int]bool, len(card))
		for _, s := range card {
			set[s] = true
		}
		sets[i] = set
	}

	for i := range cards {
		for j := i + 1; j < len(cards); j++ {
			var shared []int
			for s := range sets[i] {
				if sets[j][s] {
					shared = append(shared, s)
				}
			}
			if len(shared) != 1 {
				sort.Ints(shared)
				return &InvariantError{CardA: i, CardB: j, Shared: shared}
			}
		}
	}
	return nil
}

// LimitDeck truncates the deck to at most maxCards cards, keeping the
// original order. Any prefix of a valid deck is itself valid, since the
// property is pairwise; the re-verification is a defensive check.
func LimitDeck(deck Deck, maxCards int) (Deck, error) {
	if maxCards >= len(deck.Cards) {
		return deck, nil
	}
	if maxCards < 0 {
		maxCards = 0
	}

	limited := Deck{
		Cards:        deck.Cards[:maxCards],
		TotalSymbols: deck.TotalSymbols,
		Params:       deck.Params,
	}
	if err := VerifyDeck(limited.Cards); err != nil {
		return Deck{}, err
	}
	return limited, nil
}

// shuffleInts is an in-place Fisher-Yates shuffle.
func shuffleInts(s []int, rng RNG) {
	if rng == nil {
		return
	}
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

package games

// Card is one playing card out of a standard 52-card deck
type Card struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

var (
	suits = []string{"hearts", "diamonds", "clubs", "spades"}
	ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

	// rankOrder maps rank to its index in ascending order (2 .. A)
	rankOrder = func() map[string]int {
		m := make(map[string]int, len(ranks))
		for i, r := range ranks {
			m[r] = i
		}
		return m
	}()
)

// newDeck returns an ordered 52-card deck
func newDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range suits {
		for _, r := range ranks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// shuffledDeck returns a deck shuffled with a Fisher-Yates pass driven by
// the draw source, so the order is fully determined by the draws.
func shuffledDeck(src Source) []Card {
	deck := newDeck()
	for i := len(deck) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// cardStrings renders a hand for outcome detail
func cardStrings(hand []Card) []string {
	out := make([]string, len(hand))
	for i, c := range hand {
		out[i] = c.Rank + " of " + c.Suit
	}
	return out
}

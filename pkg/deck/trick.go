package deck

// Winner returns the position of the winning card in a completed trick.
// Cards must be in play order; lead is the suit of the card that opened the
// trick. The scan keeps the current best and replaces it whenever a later
// card takes it, so no total ordering over the trick is required.
func Winner(cards []Card, lead Suit) int {
	best := 0
	for i := 1; i < len(cards); i++ {
		if cards[i].Takes(cards[best], lead) {
			best = i
		}
	}

	return best
}

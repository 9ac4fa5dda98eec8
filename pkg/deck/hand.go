package deck

// Hand represents a collection of cards
type Hand []Card

func (h Hand) Len() int {
	return len(h)
}

func (h Hand) Less(i, j int) bool {
	return h[i].Less(h[j])
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// Discard removes the card from the hand.
// Returns false if the card was not in the hand.
func (h *Hand) Discard(card Card) bool {
	for i, c := range *h {
		if c == card {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return true
		}
	}

	return false
}

// FollowingSuit returns the cards in the hand matching the given suit
func (h Hand) FollowingSuit(suit Suit) Hand {
	follow := make(Hand, 0, len(h))
	for _, c := range h {
		if c.Suit == suit {
			follow = append(follow, c)
		}
	}

	return follow
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}

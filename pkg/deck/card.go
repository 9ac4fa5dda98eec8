package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrMalformedCard is an error when a card string cannot be parsed
var ErrMalformedCard = errors.New("malformed card")

// Suit represents a card suit
type Suit int

// suit constants, in canonical display order
const (
	Blue Suit = iota
	Pink
	Green
	Yellow
	Rocket
)

var suitNames = [...]string{"blue", "pink", "green", "yellow", "rocket"}
var suitIcons = [...]string{"🌀", "🌸", "☘️", "⭐️", "🚀"}

// Suits returns all suits in canonical order
func Suits() []Suit {
	return []Suit{Blue, Pink, Green, Yellow, Rocket}
}

func (s Suit) String() string {
	if s < Blue || s > Rocket {
		return fmt.Sprintf("suit(%d)", int(s))
	}

	return suitNames[s]
}

// Icon returns the glyph for the suit
func (s Suit) Icon() string {
	return suitIcons[s]
}

// MaxRank returns the highest rank in the suit
func (s Suit) MaxRank() int {
	if s == Rocket {
		return 4
	}

	return 9
}

// MarshalJSON encodes the suit as its name
func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the suit from its name
func (s *Suit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for i, n := range suitNames {
		if n == name {
			*s = Suit(i)
			return nil
		}
	}

	return fmt.Errorf("unknown suit: %s", name)
}

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return fmt.Sprintf("%d%s", c.Rank, c.Suit.Icon())
}

// Less provides a total ordering by (suit, rank), used for display
func (c Card) Less(other Card) bool {
	if c.Suit != other.Suit {
		return c.Suit < other.Suit
	}

	return c.Rank < other.Rank
}

// Takes returns true if the card would beat other in a trick led with the
// given suit. The relation is not a total order: two off-suit, non-rocket
// cards never take each other.
func (c Card) Takes(other Card, lead Suit) bool {
	if c.Suit == other.Suit {
		return c.Rank > other.Rank
	}

	if c.Suit == Rocket {
		return true
	}

	if other.Suit == Rocket {
		return false
	}

	return c.Suit == lead
}

// parsing accepts icons with or without the emoji variation selector
const variationSelector = "\ufe0f"

// CardFromString parses a card from its canonical form, e.g. "4🚀".
// A string that cannot be parsed returns an error wrapping ErrMalformedCard.
func CardFromString(s string) (Card, error) {
	r, size := utf8.DecodeRuneInString(s)
	if !unicode.IsDigit(r) || r == '0' {
		return Card{}, fmt.Errorf("%w: %q", ErrMalformedCard, s)
	}

	rank := int(r - '0')
	icon := strings.TrimSuffix(s[size:], variationSelector)

	for _, suit := range Suits() {
		if icon == strings.TrimSuffix(suit.Icon(), variationSelector) {
			if rank > suit.MaxRank() {
				return Card{}, fmt.Errorf("%w: %q has no rank %d", ErrMalformedCard, suit, rank)
			}

			return Card{Rank: rank, Suit: suit}, nil
		}
	}

	return Card{}, fmt.Errorf("%w: %q", ErrMalformedCard, s)
}

// CardsFromString parses a whitespace-separated list of cards
func CardsFromString(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, len(fields))
	for i, field := range fields {
		card, err := CardFromString(field)
		if err != nil {
			return nil, err
		}

		cards[i] = card
	}

	return cards, nil
}

// CardsToString converts a slice of cards to a string in the format of "1🌀 2🌸 ..."
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, " ")
}

package engine

import (
	"fmt"

	poker "github.com/paulhankin/poker"
)

// Convert our engine.Card -> library card.
func toPH(c Card) (poker.Card, error) {
	var none poker.Card
	var s poker.Suit
	switch c.Suit {
	case Clubs:
		s = poker.Club
	case Diamonds:
		s = poker.Diamond
	case Hearts:
		s = poker.Heart
	case Spades:
		s = poker.Spade
	default:
		return none, fmt.Errorf("invalid suit %d", c.Suit)
	}
	// Our ranks: 0..12 (Two=0, Ace=12). Library: 1..13 (Ace=1).
	var r poker.Rank
	if c.Rank == Ace {
		r = poker.Rank(1)
	} else {
		r = poker.Rank(c.Rank + 2)
	}
	return poker.MakeCard(s, r)
}

func toPHSlice(h Hand) ([]poker.Card, error) {
	out := make([]poker.Card, len(h))
	for i, c := range h {
		pc, err := toPH(c)
		if err != nil {
			return nil, err
		}
		out[i] = pc
	}
	return out, nil
}

// Score is the library's five-card strength score. Equal scores mean equal hands.
func Score(h Hand) (int16, error) {
	if len(h) != 5 {
		return 0, fmt.Errorf("score needs 5 cards, got %d", len(h))
	}
	pcs, err := toPHSlice(h)
	if err != nil {
		return 0, err
	}
	var a5 [5]poker.Card
	copy(a5[:], pcs)
	return poker.Eval5(&a5), nil
}

// Describe returns the library's own wording for the hand, used as a
// cross-check next to Classify output.
func Describe(h Hand) (string, error) {
	pcs, err := toPHSlice(h)
	if err != nil {
		return "", err
	}
	return poker.Describe(pcs)
}

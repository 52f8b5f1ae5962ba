package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ParseError reports a token that is not a valid card.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string { return fmt.Sprintf("bad card string %q", e.Token) }

// ErrTokenRejected is returned by ParseHandWith under RejectInvalid.
var ErrTokenRejected = errors.New("hand contains an invalid card")

// ParseCard parses "<rank><suit>" or "10<suit>". Ranks are 2-9, J, Q, K, A;
// a bare T is not accepted. Suits are ♣ ♦ ♥ ♠ or the letters c d h s.
func ParseCard(token string) (Card, error) {
	bad := &ParseError{Token: token}
	rs := []rune(token)
	if len(rs) != 2 && len(rs) != 3 {
		return Card{}, bad
	}
	var rank Rank
	switch lead := rs[0]; {
	case lead == '1':
		if len(rs) != 3 || rs[1] != '0' {
			return Card{}, bad
		}
		rank = Ten
	case lead >= '2' && lead <= '9':
		rank = Rank(lead - '2')
	case lead == 'J':
		rank = Jack
	case lead == 'Q':
		rank = Queen
	case lead == 'K':
		rank = King
	case lead == 'A':
		rank = Ace
	default:
		return Card{}, bad
	}
	// only the ten form may be three runes long
	if rank != Ten && len(rs) != 2 {
		return Card{}, bad
	}
	suit, ok := suitFromRune(rs[len(rs)-1])
	if !ok {
		return Card{}, bad
	}
	return Card{Rank: rank, Suit: suit}, nil
}

func suitFromRune(r rune) (Suit, bool) {
	for i := Suit(0); i < NumSuits; i++ {
		if r == suitGlyphs[i] || r == rune(suitLetters[i]) {
			return i, true
		}
	}
	return 0, false
}

// String renders the card as "<rank-name> of <suit-name>", e.g. "king of hearts".
func (c Card) String() string { return c.Rank.Name() + " of " + c.Suit.Name() }

// Token renders the card in the form ParseCard accepts, e.g. "10♥".
func (c Card) Token() string { return c.Rank.Token() + string(c.Suit.Glyph()) }

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// Tokens returns the parseable token of every card, in order.
func (h Hand) Tokens() []string {
	out := make([]string, len(h))
	for i, c := range h {
		out[i] = c.Token()
	}
	return out
}

func (h Hand) Contains(c Card) bool {
	for _, x := range h {
		if x == c {
			return true
		}
	}
	return false
}

// TokenPolicy decides what happens to a token that failed to parse.
// Returning nil skips the token; returning an error aborts ParseHandWith.
type TokenPolicy func(token string, err error) error

// SkipInvalid drops bad tokens silently.
func SkipInvalid(string, error) error { return nil }

// RejectInvalid fails the whole hand on the first bad token.
func RejectInvalid(_ string, err error) error { return fmt.Errorf("%w: %w", ErrTokenRejected, err) }

// CollectInvalid skips bad tokens and appends them to dst.
func CollectInvalid(dst *[]string) TokenPolicy {
	return func(token string, _ error) error {
		*dst = append(*dst, token)
		return nil
	}
}

// ParseHand splits text on whitespace and keeps every token that parses.
// It never fails; a hand with no valid tokens is empty.
func ParseHand(text string) Hand {
	h, _ := ParseHandWith(text, SkipInvalid)
	return h
}

func ParseHandWith(text string, policy TokenPolicy) (Hand, error) {
	if policy == nil {
		policy = SkipInvalid
	}
	h := Hand{}
	for _, tok := range strings.FieldsFunc(text, unicode.IsSpace) {
		c, err := ParseCard(tok)
		if err != nil {
			if perr := policy(tok, err); perr != nil {
				return nil, perr
			}
			continue
		}
		h = append(h, c)
	}
	return h, nil
}

package engine

import (
	"errors"
	"testing"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		token string
		want  Card
	}{
		{"K♠", Card{Rank: King, Suit: Spades}},
		{"10♥", Card{Rank: Ten, Suit: Hearts}},
		{"2♣", Card{Rank: Two, Suit: Clubs}},
		{"A♦", Card{Rank: Ace, Suit: Diamonds}},
		{"9h", Card{Rank: Nine, Suit: Hearts}},
		{"10s", Card{Rank: Ten, Suit: Spades}},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.token)
		if err != nil {
			t.Fatalf("ParseCard(%q) returned error: %v", tt.token, err)
		}
		if got != tt.want {
			t.Fatalf("ParseCard(%q) = %+v, want %+v", tt.token, got, tt.want)
		}
	}
}

func TestParseCardRejects(t *testing.T) {
	for _, tok := range []string{"T♥", "", "K", "1♥", "11♥", "10", "K♥♥", "K♥x", "Kx", "B♣", "0♣", "10♥♥", "k♥"} {
		_, err := ParseCard(tok)
		if err == nil {
			t.Fatalf("ParseCard(%q) succeeded, want error", tok)
		}
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Token != tok {
			t.Fatalf("ParseCard(%q) error = %v, want *ParseError for the token", tok, err)
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseCard("T♥")
	if got, want := err.Error(), `bad card string "T♥"`; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

func TestCardRoundTrip(t *testing.T) {
	for s := Suit(0); s < NumSuits; s++ {
		for r := Rank(0); r < NumRanks; r++ {
			c := Card{Rank: r, Suit: s}
			got, err := ParseCard(c.Token())
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", c.Token(), err)
			}
			if got != c || got.String() != c.String() {
				t.Fatalf("round trip %q: got %v, want %v", c.Token(), got, c)
			}
		}
	}
}

func TestCardString(t *testing.T) {
	tests := map[string]string{
		"K♥":  "king of hearts",
		"10♦": "10 of diamonds",
		"2♣":  "2 of clubs",
		"Q♠":  "queen of spades",
		"J♥":  "jack of hearts",
		"A♠":  "ace of spades",
	}
	for tok, want := range tests {
		c, err := ParseCard(tok)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", tok, err)
		}
		if got := c.String(); got != want {
			t.Errorf("%q renders %q, want %q", tok, got, want)
		}
	}
}

func TestParseHandSkipsBadTokens(t *testing.T) {
	h := ParseHand("K♥ 4♦ 10♥ J♠ A♦")
	if len(h) != 5 {
		t.Fatalf("len = %d, want 5", len(h))
	}
	if got, want := h.String(), "king of hearts, 4 of diamonds, 10 of hearts, jack of spades, ace of diamonds"; got != want {
		t.Fatalf("hand = %q, want %q", got, want)
	}

	h = ParseHand("A♥ K♥ Q♥ J♥ T♥")
	if len(h) != 4 {
		t.Fatalf("len = %d, want 4 (T♥ dropped)", len(h))
	}

	h = ParseHand("  nope\tzz \n ")
	if h == nil || len(h) != 0 {
		t.Fatalf("got %v, want empty non-nil hand", h)
	}
}

func TestParseHandWithPolicies(t *testing.T) {
	_, err := ParseHandWith("A♥ T♥ Q♥", RejectInvalid)
	if !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("err = %v, want ErrTokenRejected", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Token != "T♥" {
		t.Fatalf("err = %v, want wrapped ParseError for T♥", err)
	}

	var skipped []string
	h, err := ParseHandWith("A♥ T♥ Q♥ 1x", CollectInvalid(&skipped))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h) != 2 {
		t.Fatalf("len = %d, want 2", len(h))
	}
	if len(skipped) != 2 || skipped[0] != "T♥" || skipped[1] != "1x" {
		t.Fatalf("skipped = %v", skipped)
	}

	h, err = ParseHandWith("A♥ T♥", nil)
	if err != nil || len(h) != 1 {
		t.Fatalf("nil policy: got %v, %v", h, err)
	}
}

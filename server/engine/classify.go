package engine

import "fmt"

// Category is the strength class of a hand, weakest first.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPairs
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = [...]string{
	"high card", "pair", "two pairs", "3 of a kind", "straight",
	"flush", "full house", "4 of a kind", "straight flush", "royal flush",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Categories lists every category from weakest to strongest.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// TieBreak picks the dominant rank when two ranks share the highest count.
type TieBreak int

const (
	// PreferHigher keeps the stronger rank: a high-card hand reports its top card.
	PreferHigher TieBreak = iota
	// PreferLower keeps the weaker rank.
	PreferLower
)

func (t TieBreak) String() string {
	if t == PreferLower {
		return "lower"
	}
	return "higher"
}

// ParseTieBreak accepts "higher" or "lower"; anything else is PreferHigher.
func ParseTieBreak(s string) TieBreak {
	if s == "lower" || s == "low" {
		return PreferLower
	}
	return PreferHigher
}

// Signals are the facts derived from a hand's suit and rank multiplicities.
type Signals struct {
	Flush        bool
	Straight     bool
	ThreeOfAKind bool
	TwoOfAKind   bool
	TwoPairs     bool
	FullHouse    bool
	PairCount    int
	// KindCount is the largest number of cards sharing a rank and KindRank
	// that rank. KindCount is 0 for an empty hand.
	KindCount int
	KindRank  Rank
}

// Classifier maps hands to categories. The zero value is ready to use.
type Classifier struct {
	TieBreak TieBreak
	// RequireDistinctRanks rejects straights whose index span only fits
	// because a rank repeats (e.g. 8 8 9 10 Q).
	RequireDistinctRanks bool
}

type Result struct {
	Category Category
	Signals  Signals
	Text     string
}

func (cl Classifier) Analyze(h Hand) Signals {
	var suits [NumSuits]int
	var ranks [NumRanks]int
	for _, c := range h {
		suits[c.Suit]++
		ranks[c.Rank]++
	}

	var sig Signals
	for _, n := range suits {
		if n == 5 {
			sig.Flush = true
		}
	}
	distinct := 0
	for _, n := range ranks {
		switch n {
		case 0:
			continue
		case 2:
			sig.PairCount++
		case 3:
			sig.ThreeOfAKind = true
		}
		distinct++
	}
	sig.TwoOfAKind = sig.PairCount > 0
	sig.TwoPairs = sig.PairCount == 2
	sig.FullHouse = sig.ThreeOfAKind && sig.TwoOfAKind

	if len(h) > 0 {
		low, high := h[0].Rank, h[0].Rank
		for _, c := range h[1:] {
			low = min(low, c.Rank)
			high = max(high, c.Rank)
		}
		sig.Straight = int(high-low)+1 == len(h)
		if cl.RequireDistinctRanks && distinct != len(h) {
			sig.Straight = false
		}
	}

	// ascending scan: a tie replaces the kept rank only under PreferHigher
	for r := Rank(0); r < NumRanks; r++ {
		n := ranks[r]
		if n == 0 {
			continue
		}
		if n > sig.KindCount || (n == sig.KindCount && cl.TieBreak == PreferHigher) {
			sig.KindCount = n
			sig.KindRank = r
		}
	}
	return sig
}

func (cl Classifier) Classify(h Hand) Result {
	sig := cl.Analyze(h)
	res := Result{Signals: sig}
	name := sig.KindRank.Name()
	switch {
	case sig.Straight && sig.Flush && sig.KindRank == Ace:
		res.Category, res.Text = RoyalFlush, "royal flush"
	case sig.Straight && sig.Flush:
		res.Category, res.Text = StraightFlush, "straight flush"
	case sig.KindCount == 4:
		res.Category, res.Text = FourOfAKind, fmt.Sprintf("4 of a kind of %ss", name)
	case sig.FullHouse:
		res.Category, res.Text = FullHouse, "full house"
	case sig.Flush:
		res.Category, res.Text = Flush, "flush"
	case sig.Straight:
		res.Category, res.Text = Straight, "straight"
	case sig.KindCount == 3:
		res.Category, res.Text = ThreeOfAKind, fmt.Sprintf("3 of a kind of %ss", name)
	case sig.TwoPairs:
		res.Category, res.Text = TwoPairs, "two pairs"
	case sig.KindCount == 2:
		res.Category, res.Text = Pair, fmt.Sprintf("pair of %ss", name)
	case len(h) == 0:
		res.Category, res.Text = HighCard, "no cards"
	default:
		res.Category = HighCard
		res.Text = fmt.Sprintf("high card %s of %s", name, suitOf(h, sig.KindRank).Name())
	}
	return res
}

// suitOf returns the suit of the first card with rank r.
func suitOf(h Hand, r Rank) Suit {
	for _, c := range h {
		if c.Rank == r {
			return c.Suit
		}
	}
	return NumSuits
}

// Classify names the category of h with the default classifier.
func Classify(h Hand) string { return Classifier{}.Classify(h).Text }

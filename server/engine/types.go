package engine

// Rank is a card face value. The zero value is Two; Ace is the strongest.
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks in a deck.
const NumRanks = 13

var rankNames = [NumRanks]string{
	"2", "3", "4", "5", "6", "7", "8", "9", "10", "jack", "queen", "king", "ace",
}

var rankTokens = [NumRanks]string{
	"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A",
}

func (r Rank) Valid() bool { return r < NumRanks }

// Name is the display name used in card and category text, e.g. "queen" or "10".
func (r Rank) Name() string {
	if !r.Valid() {
		return "?"
	}
	return rankNames[r]
}

// Token is the short form accepted by ParseCard.
func (r Rank) Token() string {
	if !r.Valid() {
		return "?"
	}
	return rankTokens[r]
}

func (r Rank) String() string { return r.Name() }

// Suit is one of the four card groups. Suits have no order.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const NumSuits = 4

var suitNames = [NumSuits]string{"clubs", "diamonds", "hearts", "spades"}
var suitGlyphs = [NumSuits]rune{'♣', '♦', '♥', '♠'}
var suitLetters = [NumSuits]byte{'c', 'd', 'h', 's'}

func (s Suit) Valid() bool { return s < NumSuits }

func (s Suit) Name() string {
	if !s.Valid() {
		return "?"
	}
	return suitNames[s]
}

func (s Suit) Glyph() rune {
	if !s.Valid() {
		return '?'
	}
	return suitGlyphs[s]
}

// Letter is the ASCII stand-in for the glyph ('c', 'd', 'h', 's').
func (s Suit) Letter() byte {
	if !s.Valid() {
		return '?'
	}
	return suitLetters[s]
}

func (s Suit) String() string { return s.Name() }

// Card is an immutable (rank, suit) pair, e.g. {Queen, Hearts}.
type Card struct {
	Rank Rank
	Suit Suit
}

// Hand is an ordered sequence of cards. Classification assumes five distinct cards.
type Hand []Card

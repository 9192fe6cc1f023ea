package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"math/rand/v2"
)

// ErrEmptyDeck is returned when more cards are requested than remain in the deck.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck represents a standard 52-card deck. Cards are dealt from the end of the
// slice, so the order left by Shuffle determines the deal order.
type Deck struct {
	cards []Card
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new deck in canonical order with explicit RNG.
// A nil rng falls back to the process-wide generator.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// FullDeck returns the 52 cards in canonical order: suit-major, rank ascending.
func FullDeck() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// RemainingDeck returns the canonical deck minus the known cards.
func RemainingDeck(known ...Card) []Card {
	used := NewCardSet(known...)
	cards := make([]Card, 0, 52-len(known))
	for _, card := range FullDeck() {
		if !used.Contains(card) {
			cards = append(cards, card)
		}
	}
	return cards
}

// Reset repopulates the deck with all 52 cards in canonical order
func (d *Deck) Reset() {
	d.cards = append(d.cards[:0], FullDeck()...)
}

// Shuffle shuffles the deck in place using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the last card of the deck
func (d *Deck) Deal() (Card, error) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return card, nil
}

// DealMultiple deals n cards, in the same order as n calls to Deal.
// If fewer than n cards remain it fails with ErrEmptyDeck and the deck is
// left untouched.
func (d *Deck) DealMultiple(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot deal %d cards", n)
	}
	if n > len(d.cards) {
		return nil, fmt.Errorf("deal %d cards with %d remaining: %w", n, len(d.cards), ErrEmptyDeck)
	}

	dealt := make([]Card, n)
	for i := range dealt {
		dealt[i] = d.cards[len(d.cards)-1-i]
	}
	d.cards = d.cards[:len(d.cards)-n]
	return dealt, nil
}

// RemoveCards removes every card matching one of the given cards.
// Cards not present in the deck are ignored.
func (d *Deck) RemoveCards(cards ...Card) {
	if len(cards) == 0 {
		return
	}
	exclude := NewCardSet(cards...)
	kept := d.cards[:0]
	for _, card := range d.cards {
		if !exclude.Contains(card) {
			kept = append(kept, card)
		}
	}
	d.cards = kept
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the cards left in the deck, in deal-reverse order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// CardSet represents a set of cards using a bitset for fast operations.
// Each card maps to its canonical deck index.
type CardSet uint64

// NewCardSet creates a CardSet from cards
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, card := range cards {
		cs.Add(card)
	}
	return cs
}

// Add adds a card to the set
func (cs *CardSet) Add(card Card) {
	*cs |= 1 << card.index()
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(card Card) bool {
	return cs&(1<<card.index()) != 0
}

// Len returns the number of cards in the set
func (cs CardSet) Len() int {
	return bits.OnesCount64(uint64(cs))
}

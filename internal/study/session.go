// Package study implements the flashcard review session: a circular walk
// over a snapshot of the notebook, one card at a time.
package study

import (
	"sync"

	"popdict/internal/models"
)

// Session is the transient review state. It is never persisted and is
// discarded on Exit. The deck is a snapshot taken at Start; notebook
// mutations during an active session do not affect it.
type Session struct {
	mu      sync.Mutex
	active  bool
	index   int
	flipped bool
	deck    []models.DictionaryEntry
}

// NewSession returns an inactive session.
func NewSession() *Session {
	return &Session{}
}

// Start snapshots entries and enters the active state at the first card,
// front side up. Starting with an empty deck is a no-op; returns whether
// the session is now active.
func (s *Session) Start(entries []models.DictionaryEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(entries) == 0 {
		return false
	}
	s.deck = make([]models.DictionaryEntry, len(entries))
	copy(s.deck, entries)
	s.active = true
	s.index = 0
	s.flipped = false
	return true
}

// Next advances to the following card, wrapping past the end, and resets
// the card to its front side.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.index = (s.index + 1) % len(s.deck)
	s.flipped = false
}

// Previous moves to the preceding card, wrapping before the start, and
// resets the card to its front side.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.index = (s.index - 1 + len(s.deck)) % len(s.deck)
	s.flipped = false
}

// Flip toggles the current card between front and back without moving.
func (s *Session) Flip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.flipped = !s.flipped
}

// Exit leaves the session and discards all state.
func (s *Session) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.index = 0
	s.flipped = false
	s.deck = nil
}

// Card describes the session's visible state.
type Card struct {
	Active  bool                    `json:"active"`
	Index   int                     `json:"index"`
	Count   int                     `json:"count"`
	Flipped bool                    `json:"flipped"`
	Entry   *models.DictionaryEntry `json:"entry,omitempty"`
}

// Current returns the visible state: the card under review and its position.
func (s *Session) Current() Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return Card{}
	}
	entry := s.deck[s.index]
	return Card{
		Active:  true,
		Index:   s.index,
		Count:   len(s.deck),
		Flipped: s.flipped,
		Entry:   &entry,
	}
}

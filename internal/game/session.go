package game

import (
	"sync"
	"time"

	"k8s.io/klog/v2"
)

// Session is one game: an Engine plus the timer that flips mismatched pairs
// back after a delay. All methods are safe for concurrent use.
type Session struct {
	ID    string
	Delay time.Duration

	mu        sync.Mutex
	engine    *Engine
	flipTimer *time.Timer
	listeners map[int]func(Snapshot)
	nextID    int
	closed    bool
}

// NewSession creates a session with a freshly shuffled deck of the given symbols.
func NewSession(id string, symbols []int, delay time.Duration) *Session {
	return NewSessionWithDeck(id, NewDeck(symbols), delay)
}

// NewSessionWithDeck creates a session on a fixed deck.
func NewSessionWithDeck(id string, deck Deck, delay time.Duration) *Session {
	return &Session{
		ID:        id,
		Delay:     delay,
		engine:    NewWithDeck(deck),
		listeners: make(map[int]func(Snapshot)),
	}
}

// Click forwards a card click to the engine.
// A mismatch arms the flip-back timer, and listeners are notified of every applied transition.
func (s *Session) Click(position int) Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Ignored
	}
	t := s.engine.Click(position)
	klog.V(1).Infof("Session %s: click %d -> %s", s.ID, position, t)
	if t == PairMismatched {
		pair, _ := s.engine.PendingPair()
		s.armFlipBackLocked(pair)
	}
	if t.Applied() {
		s.notifyLocked()
	}
	return t
}

// armFlipBackLocked schedules the flip-back of pair. s.mu must be held.
//
// Only one pair can be pending at a time, since the engine ignores clicks
// while two cards are up, so there is at most one live timer.
func (s *Session) armFlipBackLocked(pair Pair) {
	if s.flipTimer != nil {
		s.flipTimer.Stop()
	}
	s.flipTimer = time.AfterFunc(s.Delay, func() {
		s.flipBack(pair)
	})
}

func (s *Session) flipBack(pair Pair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.engine.FlipBack(pair) {
		klog.V(1).Infof("Session %s: stale flip-back of %v ignored", s.ID, pair)
		return
	}
	s.flipTimer = nil
	klog.V(1).Infof("Session %s: flipped back %v", s.ID, pair)
	s.notifyLocked()
}

// Subscribe calls fn with the current snapshot, and then with a new snapshot
// after every applied transition.
// It returns a function that removes the listener.
//
// Listeners run with the session lock held, in transition order: they must
// not block nor call back into the session.
func (s *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	fn(s.snapshotLocked())
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Snapshot returns the current read-only projection of the game.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Deck returns the session's deck.
func (s *Session) Deck() Deck {
	return s.engine.Deck()
}

// Close stops the pending flip-back timer, if any. Clicks after Close are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.flipTimer != nil {
		s.flipTimer.Stop()
		s.flipTimer = nil
	}
	clear(s.listeners)
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		GameID:   s.ID,
		Cards:    s.engine.Views(),
		Revealed: s.engine.Revealed(),
		Matched:  s.engine.Matched(),
		Complete: s.engine.IsComplete(),
	}
}

func (s *Session) notifyLocked() {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := s.snapshotLocked()
	for _, l := range s.listeners {
		l(snapshot)
	}
}

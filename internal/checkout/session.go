package checkout

import (
	"errors"
	"sync"

	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
)

// ErrSubmitInProgress rejects edits and resubmissions while a submission is running.
var ErrSubmitInProgress = errors.New("une validation de commande est déjà en cours")

// Session is one operator's ordering state: a selection and its settlement draft.
type Session struct {
	mu         sync.Mutex
	selection  Selection
	draft      Draft
	submitting bool
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{selection: make(Selection), draft: NewDraft()}
}

// Snapshot returns copies of the selection and draft.
func (s *Session) Snapshot() (Selection, Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Clone(), s.draft
}

// SetQuantity selects itemID with a positive quantity.
func (s *Session) SetQuantity(itemID string, qty int) error {
	if qty <= 0 {
		return domainErrors.ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitInProgress
	}
	s.selection[itemID] = qty
	return nil
}

// Remove drops itemID from the selection.
func (s *Session) Remove(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitInProgress
	}
	delete(s.selection, itemID)
	return nil
}

// Cancel clears the selection and the draft.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitInProgress
	}
	s.reset()
	return nil
}

// ApplySettlement merges u into the draft; total is the current selection total.
func (s *Session) ApplySettlement(u SettlementUpdate, total int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitInProgress
	}
	return s.draft.Apply(u, total)
}

// BeginSubmit freezes the session and returns what is being submitted.
func (s *Session) BeginSubmit() (Selection, Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return nil, Draft{}, ErrSubmitInProgress
	}
	s.submitting = true
	return s.selection.Clone(), s.draft, nil
}

// EndSubmit unfreezes the session, clearing it when the order was saved.
func (s *Session) EndSubmit(saved bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if saved {
		s.reset()
	}
}

func (s *Session) reset() {
	s.selection = make(Selection)
	s.draft = NewDraft()
}

// Registry holds one session per operator.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]*Session)}
}

// Get returns the operator's session, creating it on first use.
func (r *Registry) Get(userID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		s = NewSession()
		r.sessions[userID] = s
	}
	return s
}

// Drop forgets the operator's session.
func (r *Registry) Drop(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

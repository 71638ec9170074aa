package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/internal/session/store"
)

var (
	ErrSelectionNotStarted = errors.New("selection not started for session")
	ErrNoPendingSelection  = errors.New("no selection awaiting confirmation")
	ErrEmptySelection      = errors.New("no sitter selected")
)

// SelectionListener observes selection state changes. Callbacks run
// synchronously under the selection lock, so implementations must be quick
// and must not call back into the SelectionService.
type SelectionListener interface {
	SelectionChanged(sessionID string, selected *domain.SitterItem, requiresConfirmation bool)
}

// selectionState is a caregiver's transient invite-editing state for one
// session. It lives only in memory; nothing persists until Commit.
type selectionState struct {
	actorID  string
	invite   *domain.Invite    // active invite snapshot, nil when none
	selected *domain.SitterItem
	pending  *domain.SitterItem // held selection awaiting Confirm
}

// SelectionService tracks which sitter a caregiver is picking for a session
// before anything is persisted. Selecting over a different sitter's live
// invite demands an explicit Confirm, which deletes the old invite.
type SelectionService struct {
	Store    store.Store
	Invites  *InviteService
	Listener SelectionListener

	mu     sync.Mutex
	states map[string]*selectionState
}

func NewSelectionService(st store.Store, invites *InviteService) *SelectionService {
	return &SelectionService{
		Store:   st,
		Invites: invites,
		states:  make(map[string]*selectionState),
	}
}

// Begin opens an editing state for the session, seeded from its active
// invite so a fresh state reports no unsaved changes.
func (s *SelectionService) Begin(ctx context.Context, actorID, sessionID string) error {
	sess, err := s.Store.Sessions().GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	if sess.OwnerID != actorID {
		return ErrSessionForbidden
	}

	st := &selectionState{actorID: actorID}
	inv, err := s.Store.Invites().GetActiveInviteBySession(ctx, sessionID)
	switch {
	case err == nil:
		st.invite = &inv
		if !inv.Open() {
			st.selected = &domain.SitterItem{Name: inv.SitterName, Email: inv.SitterEmail}
		}
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = st
	return nil
}

// state resolves the session's editing state for actorID. Must be called
// with s.mu held. Only the account that opened the state may touch it.
func (s *SelectionService) state(actorID, sessionID string) (*selectionState, error) {
	st, ok := s.states[sessionID]
	if !ok {
		return nil, ErrSelectionNotStarted
	}
	if st.actorID != actorID {
		return nil, ErrSessionForbidden
	}
	return st, nil
}

// Select picks a sitter for the session. Selecting the currently-selected
// sitter deselects it. When a live invite exists for a different sitter the
// selection is held and true is returned: the caller must Confirm before the
// pick takes effect.
func (s *SelectionService) Select(ctx context.Context, actorID, sessionID string, sitter domain.SitterItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.state(actorID, sessionID)
	if err != nil {
		return false, err
	}

	// Toggle off.
	if st.selected != nil && sameSitter(*st.selected, sitter) {
		st.selected = nil
		st.pending = nil
		s.notifyChanged(sessionID, nil, false)
		return false, nil
	}

	if st.invite != nil && !strings.EqualFold(st.invite.SitterEmail, sitter.Email) {
		st.pending = &sitter
		s.notifyChanged(sessionID, st.selected, true)
		return true, nil
	}

	st.selected = &sitter
	st.pending = nil
	s.notifyChanged(sessionID, st.selected, false)
	return false, nil
}

// Confirm promotes the held selection, deleting the invite it would replace.
func (s *SelectionService) Confirm(ctx context.Context, actorID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.state(actorID, sessionID)
	if err != nil {
		return err
	}
	if st.pending == nil {
		return ErrNoPendingSelection
	}

	if st.invite != nil {
		if err := s.Invites.DeleteInvite(ctx, st.actorID, st.invite.ID); err != nil && !errors.Is(err, ErrInviteNotFound) {
			return err
		}
		st.invite = nil
	}

	st.selected = st.pending
	st.pending = nil
	s.notifyChanged(sessionID, st.selected, false)
	return nil
}

// HasUnsavedChanges reports whether the editing state diverges from what is
// persisted: a selection differing from the live invite's sitter, or any
// selection when no invite exists.
func (s *SelectionService) HasUnsavedChanges(actorID, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.state(actorID, sessionID)
	if err != nil {
		return false, err
	}

	selEmail := ""
	if st.selected != nil {
		selEmail = st.selected.Email
	}
	if st.invite != nil {
		return !strings.EqualFold(st.invite.SitterEmail, selEmail), nil
	}
	return st.selected != nil, nil
}

// Commit persists the selection as an invite: an update when the session's
// live invite survives the edit, a fresh create otherwise.
func (s *SelectionService) Commit(ctx context.Context, actorID, sessionID string) (domain.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.state(actorID, sessionID)
	if err != nil {
		return domain.Invite{}, err
	}
	if st.selected == nil {
		return domain.Invite{}, ErrEmptySelection
	}

	var inv domain.Invite
	if st.invite != nil {
		inv, err = s.Invites.UpdateInvite(ctx, st.actorID, st.invite.ID, st.selected.Email, st.selected.Name)
	} else {
		inv, err = s.Invites.CreateInvite(ctx, st.actorID, sessionID, st.selected.ID, st.selected.Email, st.selected.Name)
	}
	if err != nil {
		return domain.Invite{}, err
	}

	st.invite = &inv
	return inv, nil
}

// End discards the session's editing state. Uncommitted selections are lost.
// Ending an absent state is a no-op.
func (s *SelectionService) End(actorID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[sessionID]
	if !ok {
		return nil
	}
	if st.actorID != actorID {
		return ErrSessionForbidden
	}
	delete(s.states, sessionID)
	return nil
}

func (s *SelectionService) notifyChanged(sessionID string, selected *domain.SitterItem, requiresConfirmation bool) {
	if s.Listener == nil {
		return
	}
	s.Listener.SelectionChanged(sessionID, selected, requiresConfirmation)
}

// sameSitter matches by ID when both sides have one, by email otherwise.
func sameSitter(a, b domain.SitterItem) bool {
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	return strings.EqualFold(a.Email, b.Email)
}

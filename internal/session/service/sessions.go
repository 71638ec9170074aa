package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/internal/session/store"
	"github.com/nestnote/nestnote/pkg/idx"
	"github.com/nestnote/nestnote/pkg/slogx"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidSession   = errors.New("invalid session")
	ErrSessionForbidden = errors.New("session belongs to another account")
)

// SessionService manages the caregiver's sessions and the sitter-side views
// of accepted ones. The assigned-sitter projection lives on the session row
// but is only mutated by the invite and join flows.
type SessionService struct {
	Store store.Store
}

// CreateSession inserts a new session owned by the calling account.
func (s *SessionService) CreateSession(ctx context.Context, item domain.SessionItem) (domain.SessionItem, error) {
	log := slogx.FromContext(ctx)

	if item.OwnerID == "" || item.NestID == "" || strings.TrimSpace(item.NestName) == "" {
		return domain.SessionItem{}, ErrInvalidSession
	}
	if !item.EndsAt.IsZero() && !item.StartsAt.IsZero() && item.EndsAt.Before(item.StartsAt) {
		return domain.SessionItem{}, ErrInvalidSession
	}

	item.ID = idx.New().String()
	item.AssignedSitter = nil

	if err := s.Store.Sessions().CreateSession(ctx, item); err != nil {
		log.Error("failed to create session",
			slog.String("session_id", item.ID),
			slog.Any("error", err),
		)
		return domain.SessionItem{}, err
	}

	log.Debug("session created",
		slog.String("session_id", item.ID),
		slog.String("nest_id", item.NestID),
	)
	return item, nil
}

// GetSession returns a session the calling account owns.
func (s *SessionService) GetSession(ctx context.Context, ownerID, sessionID string) (domain.SessionItem, error) {
	session, err := s.Store.Sessions().GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.SessionItem{}, ErrSessionNotFound
		}
		return domain.SessionItem{}, err
	}
	if session.OwnerID != ownerID {
		return domain.SessionItem{}, ErrSessionForbidden
	}
	return session, nil
}

// ListSessions returns the account's sessions, newest first.
func (s *SessionService) ListSessions(ctx context.Context, ownerID string) ([]domain.SessionItem, error) {
	if ownerID == "" {
		return nil, ErrInvalidSession
	}
	return s.Store.Sessions().ListSessionsByOwner(ctx, ownerID)
}

// ListSitterSessions returns the sessions a sitter account has joined.
func (s *SessionService) ListSitterSessions(ctx context.Context, userID string) ([]domain.SitterSession, error) {
	if userID == "" {
		return nil, ErrInvalidSession
	}
	return s.Store.SitterSessions().ListSitterSessionsByUser(ctx, userID)
}

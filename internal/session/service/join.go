package service

import (
	"context"
	"errors"
	"time"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/internal/session/store"
	"github.com/nestnote/nestnote/pkg/idx"
	"github.com/nestnote/nestnote/pkg/invitecode"
)

var (
	ErrInvalidCode           = errors.New("invalid invite code")
	ErrInviteExpired         = errors.New("invite expired")
	ErrInviteAlreadyAccepted = errors.New("invite already accepted")
	ErrInviteRevoked         = errors.New("invite revoked")
)

// JoinService is the sitter-facing side of an invite: validating a typed or
// scanned code and turning an acceptance into a SitterSession.
type JoinService struct {
	Store store.Store
}

// ValidateInvite resolves a raw user-typed or QR-scanned code to its session
// and pending invite. It never mutates anything, so clients can preview a
// join before committing to it.
func (s *JoinService) ValidateInvite(ctx context.Context, rawCode string) (domain.SessionItem, domain.Invite, error) {
	inv, err := s.lookupPending(ctx, rawCode)
	if err != nil {
		return domain.SessionItem{}, domain.Invite{}, err
	}

	sess, err := s.Store.Sessions().GetSessionByID(ctx, inv.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Session deleted out from under its invite; treat the code as dead.
			return domain.SessionItem{}, domain.Invite{}, ErrInviteNotFound
		}
		return domain.SessionItem{}, domain.Invite{}, err
	}
	return sess, inv, nil
}

// ValidateAndAcceptInvite accepts the invite for userID. The status flip is a
// conditional update on the pending row, so when two sitters race on the same
// code exactly one wins and the loser gets ErrInviteAlreadyAccepted.
func (s *JoinService) ValidateAndAcceptInvite(ctx context.Context, rawCode, userID string) (domain.SitterSession, error) {
	inv, err := s.lookupPending(ctx, rawCode)
	if err != nil {
		return domain.SitterSession{}, err
	}

	now := time.Now().UTC()
	ss := domain.SitterSession{
		ID:         idx.New().String(),
		SessionID:  inv.SessionID,
		InviteID:   inv.ID,
		UserID:     userID,
		NestID:     inv.NestID,
		NestName:   inv.NestName,
		AcceptedAt: now,
		CreatedAt:  now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invites().MarkInviteAccepted(ctx, inv.ID, userID); err != nil {
			return err
		}

		if inv.Open() {
			// Open invites have no projection until someone joins.
			if err := tx.Sessions().SetAssignedSitter(ctx, inv.SessionID, domain.AssignedSitter{
				UserID:       userID,
				InviteStatus: domain.AssignedAccepted,
				InviteID:     inv.ID,
			}); err != nil {
				return err
			}
		} else if err := tx.Sessions().UpdateAssignedSitterStatus(ctx, inv.SessionID, domain.AssignedAccepted, userID); err != nil {
			return err
		}

		return tx.SitterSessions().CreateSitterSession(ctx, ss)
	})
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrAlreadyExists):
		// No pending row matched, or the sitter session already exists: a
		// concurrent accept won.
		return domain.SitterSession{}, ErrInviteAlreadyAccepted
	case err != nil:
		return domain.SitterSession{}, err
	}
	return ss, nil
}

// DeclineInvite marks the invite declined on behalf of userID. The row is
// kept terminal so the caregiver sees the outcome on their session.
func (s *JoinService) DeclineInvite(ctx context.Context, rawCode, userID string) error {
	inv, err := s.lookupPending(ctx, rawCode)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invites().MarkInviteStatus(ctx, inv.ID, domain.InviteDeclined); err != nil {
			return err
		}
		if inv.Open() {
			return nil
		}
		return tx.Sessions().UpdateAssignedSitterStatus(ctx, inv.SessionID, domain.AssignedDeclined, userID)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrInviteAlreadyAccepted
	}
	return err
}

// lookupPending normalizes rawCode and resolves it to a live pending invite.
func (s *JoinService) lookupPending(ctx context.Context, rawCode string) (domain.Invite, error) {
	code, err := invitecode.Normalize(rawCode)
	if err != nil {
		return domain.Invite{}, ErrInvalidCode
	}

	inv, err := s.Store.Invites().GetInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrInviteNotFound
		}
		return domain.Invite{}, err
	}

	switch inv.Status {
	case domain.InviteAccepted:
		return domain.Invite{}, ErrInviteAlreadyAccepted
	case domain.InviteDeclined, domain.InviteCancelled:
		return domain.Invite{}, ErrInviteRevoked
	}
	if inv.Expired(time.Now().UTC()) {
		return domain.Invite{}, ErrInviteExpired
	}
	return inv, nil
}

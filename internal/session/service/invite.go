package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/internal/session/store"
	"github.com/nestnote/nestnote/pkg/idx"
	"github.com/nestnote/nestnote/pkg/invitecode"
	"github.com/nestnote/nestnote/pkg/sharelink"
	"github.com/nestnote/nestnote/pkg/slogx"
)

var (
	ErrInviteNotFound  = errors.New("invite not found")
	ErrInviteForbidden = errors.New("invite belongs to another account")
	ErrInvalidInvite   = errors.New("invalid invite")

	// ErrInviteFinalized is returned when mutating an invite that already
	// reached a terminal status.
	ErrInviteFinalized = errors.New("invite already finalized")

	// ErrCodeSpaceExhausted is returned when repeated code generation keeps
	// colliding with existing invites, terminal rows included. With a
	// 6-digit space this only happens under pathological load.
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique invite code")
)

// DefaultInviteTTL is how long a pending invite stays acceptable.
const DefaultInviteTTL = 48 * time.Hour

// maxCodeAttempts bounds the regenerate-on-collision loop.
const maxCodeAttempts = 5

// InviteService owns the invite lifecycle: create, update, cancel and delete.
// Every multi-step write runs in one store transaction so the invite row and
// the session's assigned-sitter projection can never drift apart.
type InviteService struct {
	Store    store.Store
	Notifier InviteNotifier

	// TTL overrides DefaultInviteTTL when positive.
	TTL time.Duration

	// WebBase is the public URL prefix for browser fallback links.
	WebBase string
}

func (s *InviteService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultInviteTTL
}

// CreateInvite invites a specific sitter to a session. Any prior pending
// invite for the session is deleted and its projection cleared in the same
// transaction, so a session never carries two live invites. sitterID may be
// empty for ad-hoc invites not backed by a saved directory entry.
func (s *InviteService) CreateInvite(ctx context.Context, createdBy, sessionID, sitterID, sitterEmail, sitterName string) (domain.Invite, error) {
	if err := validate.Var(sitterEmail, "required,email"); err != nil {
		return domain.Invite{}, ErrInvalidInvite
	}
	return s.createInvite(ctx, createdBy, sessionID, sitterID, sitterEmail, sitterName)
}

// CreateOpenInvite creates an invite any holder of the code may accept. No
// assigned-sitter projection is written until someone joins.
func (s *InviteService) CreateOpenInvite(ctx context.Context, createdBy, sessionID string) (domain.Invite, error) {
	return s.createInvite(ctx, createdBy, sessionID, "", "", "")
}

func (s *InviteService) createInvite(ctx context.Context, createdBy, sessionID, sitterID, sitterEmail, sitterName string) (domain.Invite, error) {
	sess, err := s.Store.Sessions().GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrSessionNotFound
		}
		return domain.Invite{}, err
	}
	if sess.OwnerID != createdBy {
		return domain.Invite{}, ErrSessionForbidden
	}

	now := time.Now().UTC()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := invitecode.Generate()
		if err != nil {
			return domain.Invite{}, err
		}

		inv := domain.Invite{
			ID:          idx.New().String(),
			Code:        code,
			NestID:      sess.NestID,
			NestName:    sess.NestName,
			SessionID:   sessionID,
			SitterEmail: sitterEmail,
			SitterName:  sitterName,
			Status:      domain.InvitePending,
			CreatedBy:   createdBy,
			ExpiresAt:   now.Add(s.ttl()),
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			prior, err := tx.Invites().GetActiveInviteBySession(ctx, sessionID)
			switch {
			case err == nil:
				if err := tx.Invites().DeleteInvite(ctx, prior.ID); err != nil {
					return err
				}
				if err := tx.Sessions().ClearAssignedSitter(ctx, sessionID); err != nil {
					return err
				}
			case !errors.Is(err, store.ErrNotFound):
				return err
			}

			if err := tx.Invites().CreateInvite(ctx, inv); err != nil {
				return err
			}
			if inv.Open() {
				return nil
			}
			return tx.Sessions().SetAssignedSitter(ctx, sessionID, domain.AssignedSitter{
				ID:           sitterID,
				Name:         sitterName,
				Email:        sitterEmail,
				InviteStatus: domain.AssignedInvited,
				InviteID:     inv.ID,
			})
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			continue // code collision, regenerate
		}
		if err != nil {
			return domain.Invite{}, err
		}

		s.notifyCreated(ctx, inv)
		return inv, nil
	}
	return domain.Invite{}, ErrCodeSpaceExhausted
}

// UpdateInvite changes who a pending invite is addressed to. Status, code and
// expiry are untouched; the session projection follows the new sitter.
func (s *InviteService) UpdateInvite(ctx context.Context, actorID, inviteID, sitterEmail, sitterName string) (domain.Invite, error) {
	if err := validate.Var(sitterEmail, "required,email"); err != nil {
		return domain.Invite{}, ErrInvalidInvite
	}

	inv, err := s.getOwned(ctx, actorID, inviteID)
	if err != nil {
		return domain.Invite{}, err
	}
	if inv.Status != domain.InvitePending {
		return domain.Invite{}, ErrInviteFinalized
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invites().UpdateInviteSitter(ctx, inviteID, sitterEmail, sitterName); err != nil {
			return err
		}

		sess, err := tx.Sessions().GetSessionByID(ctx, inv.SessionID)
		if err != nil {
			return err
		}
		as := domain.AssignedSitter{
			Email:        sitterEmail,
			Name:         sitterName,
			InviteStatus: domain.AssignedInvited,
			InviteID:     inviteID,
		}
		if sess.AssignedSitter != nil {
			as.ID = sess.AssignedSitter.ID
		}
		return tx.Sessions().SetAssignedSitter(ctx, inv.SessionID, as)
	})
	if err != nil {
		return domain.Invite{}, err
	}

	inv.SitterEmail = sitterEmail
	inv.SitterName = sitterName
	return inv, nil
}

// DeleteInvite removes the invite and resets the session's assigned-sitter
// linkage to none in the same transaction.
func (s *InviteService) DeleteInvite(ctx context.Context, actorID, inviteID string) error {
	inv, err := s.getOwned(ctx, actorID, inviteID)
	if err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invites().DeleteInvite(ctx, inviteID); err != nil {
			return err
		}
		return tx.Sessions().ClearAssignedSitter(ctx, inv.SessionID)
	})
}

// CancelInvite moves a pending invite to the terminal cancelled status. The
// row is kept so a sitter who later tries the code gets a revoked error
// rather than not-found.
func (s *InviteService) CancelInvite(ctx context.Context, actorID, inviteID string) error {
	inv, err := s.getOwned(ctx, actorID, inviteID)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invites().MarkInviteStatus(ctx, inviteID, domain.InviteCancelled); err != nil {
			return err
		}
		if inv.Open() {
			return nil
		}
		return tx.Sessions().UpdateAssignedSitterStatus(ctx, inv.SessionID, domain.AssignedCancelled, "")
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrInviteFinalized
	}
	return err
}

// GetInvite fetches an invite, restricted to the caregiver who created it.
func (s *InviteService) GetInvite(ctx context.Context, actorID, inviteID string) (domain.Invite, error) {
	return s.getOwned(ctx, actorID, inviteID)
}

// ShareLinks builds the deep link, web fallback and code bundle for a pending
// invite.
func (s *InviteService) ShareLinks(ctx context.Context, actorID, inviteID string) (sharelink.Links, error) {
	inv, err := s.getOwned(ctx, actorID, inviteID)
	if err != nil {
		return sharelink.Links{}, err
	}
	if inv.Status != domain.InvitePending {
		return sharelink.Links{}, ErrInviteFinalized
	}
	return sharelink.Build(inv.Code, s.WebBase)
}

func (s *InviteService) getOwned(ctx context.Context, actorID, inviteID string) (domain.Invite, error) {
	inv, err := s.Store.Invites().GetInviteByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrInviteNotFound
		}
		return domain.Invite{}, err
	}
	if inv.CreatedBy != actorID {
		return domain.Invite{}, ErrInviteForbidden
	}
	return inv, nil
}

// notifyCreated dispatches the invite notification. Failures are logged and
// swallowed: the invite is already committed and delivery is best-effort.
func (s *InviteService) notifyCreated(ctx context.Context, inv domain.Invite) {
	if s.Notifier == nil {
		return
	}
	links, err := sharelink.Build(inv.Code, s.WebBase)
	if err != nil {
		slogx.FromContext(ctx).Warn("invite notification skipped",
			slog.String("invite_id", inv.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := s.Notifier.InviteCreated(ctx, InviteNotification{Invite: inv, Links: links}); err != nil {
		slogx.FromContext(ctx).Warn("invite notification failed",
			slog.String("invite_id", inv.ID),
			slog.String("error", err.Error()),
		)
	}
}

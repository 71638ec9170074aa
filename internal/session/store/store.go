package store

import (
	"context"
	"errors"
	"time"

	"github.com/nestnote/nestnote/internal/session/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and a WithTx closure for the multi-step writes that must be
// atomic: invite create (delete-prior + insert + projection), invite delete
// (+ projection reset), and join acceptance.
type Store interface {
	Sitters() Sitters
	Sessions() Sessions
	Invites() Invites
	SitterSessions() SitterSessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Sitters interface {
	// ListSittersByAccount returns a caregiver's saved sitters, newest first.
	ListSittersByAccount(ctx context.Context, accountID string) ([]domain.SitterItem, error)

	// GetSitterByID fetches one saved sitter scoped to its owning account.
	GetSitterByID(ctx context.Context, accountID, id string) (domain.SitterItem, error)

	// UpsertSitter inserts or replaces a sitter keyed by id. Add and edit are
	// both upserts so partial delete+re-add failure windows cannot occur.
	UpsertSitter(ctx context.Context, s domain.SitterItem) error

	// DeleteSitter removes a sitter; deleting an absent sitter is a no-op.
	DeleteSitter(ctx context.Context, accountID, id string) error
}

type Sessions interface {
	// CreateSession inserts a new session (id is provided by app via ULID).
	CreateSession(ctx context.Context, s domain.SessionItem) error

	// GetSessionByID returns a session including its assigned-sitter projection.
	GetSessionByID(ctx context.Context, id string) (domain.SessionItem, error)

	// ListSessionsByOwner returns a caregiver's sessions, newest first.
	ListSessionsByOwner(ctx context.Context, ownerID string) ([]domain.SessionItem, error)

	// SetAssignedSitter writes the session's assigned-sitter projection. All
	// projection mutations go through the session update path so concurrent
	// writers cannot lose updates.
	SetAssignedSitter(ctx context.Context, sessionID string, as domain.AssignedSitter) error

	// ClearAssignedSitter resets the projection to none.
	ClearAssignedSitter(ctx context.Context, sessionID string) error

	// UpdateAssignedSitterStatus mutates only the projection's invite status
	// and, when non-empty, the bound user ID.
	UpdateAssignedSitterStatus(ctx context.Context, sessionID string, status domain.AssignedSitterStatus, userID string) error
}

type Invites interface {
	// CreateInvite writes a new invite. A code collision surfaces as
	// ErrAlreadyExists so the caller can regenerate and retry.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByID fetches an invite by its canonical ULID key.
	GetInviteByID(ctx context.Context, id string) (domain.Invite, error)

	// GetInviteByCode fetches an invite by its 6-digit join code, any status.
	GetInviteByCode(ctx context.Context, code string) (domain.Invite, error)

	// GetActiveInviteBySession returns the session's pending invite, if any.
	GetActiveInviteBySession(ctx context.Context, sessionID string) (domain.Invite, error)

	// UpdateInviteSitter mutates sitter email/name only; status and createdAt
	// are untouched.
	UpdateInviteSitter(ctx context.Context, id, sitterEmail, sitterName string) error

	// MarkInviteAccepted flips status pending->accepted and records the
	// accepting user in one conditional update. Returns ErrNotFound when no
	// pending row matched, which the service maps to "already accepted".
	MarkInviteAccepted(ctx context.Context, id, acceptedBy string) error

	// MarkInviteStatus moves a pending invite to declined or cancelled,
	// conditionally like MarkInviteAccepted.
	MarkInviteStatus(ctx context.Context, id string, status domain.InviteStatus) error

	// DeleteInvite removes the invite row. The caller owns resetting the
	// session projection in the same transaction.
	DeleteInvite(ctx context.Context, id string) error

	// ListExpiredPendingInvites returns pending invites whose expiry has
	// passed, for housekeeping.
	ListExpiredPendingInvites(ctx context.Context, now time.Time) ([]domain.Invite, error)
}

type SitterSessions interface {
	// CreateSitterSession materializes the sitter-side view of an accepted
	// join. At most one per invite (unique index).
	CreateSitterSession(ctx context.Context, ss domain.SitterSession) error

	// GetSitterSessionByInvite returns the sitter session backed by an invite.
	GetSitterSessionByInvite(ctx context.Context, inviteID string) (domain.SitterSession, error)

	// ListSitterSessionsByUser returns a sitter's accepted sessions, newest first.
	ListSitterSessionsByUser(ctx context.Context, userID string) ([]domain.SitterSession, error)
}

package domain

import "time"

// InviteStatus is the lifecycle state of an invite. Invites start pending and
// move to exactly one terminal state.
type InviteStatus string

const (
	InvitePending   InviteStatus = "pending"
	InviteAccepted  InviteStatus = "accepted"
	InviteDeclined  InviteStatus = "declined"
	InviteCancelled InviteStatus = "cancelled"
)

// Terminal reports whether the status can no longer change.
func (s InviteStatus) Terminal() bool {
	switch s {
	case InviteAccepted, InviteDeclined, InviteCancelled:
		return true
	}
	return false
}

// Invite permits one sitter (or anyone, if open) to join a session via a
// 6-digit code. The ULID ID is the canonical storage key; Code is a unique
// secondary index used for join-side lookups.
type Invite struct {
	ID          string
	Code        string // 6 decimal digits, stored unbroken
	NestID      string
	NestName    string
	SessionID   string
	SitterEmail string // empty for open invites
	SitterName  string
	Status      InviteStatus
	CreatedBy   string
	AcceptedBy  string // user ID of the accepting account, empty until accepted
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Open reports whether the invite is not bound to a specific sitter email and
// may be accepted by any holder of the code.
func (i Invite) Open() bool { return i.SitterEmail == "" }

// Expired reports whether the invite has passed its expiry at the given time.
func (i Invite) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

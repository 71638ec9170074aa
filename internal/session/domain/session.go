package domain

import "time"

// AssignedSitterStatus is the session-local projection of the invite
// lifecycle. It must stay consistent with the backing Invite: deleting the
// invite resets the projection to none.
type AssignedSitterStatus string

const (
	AssignedNone      AssignedSitterStatus = "none"
	AssignedInvited   AssignedSitterStatus = "invited"
	AssignedAccepted  AssignedSitterStatus = "accepted"
	AssignedDeclined  AssignedSitterStatus = "declined"
	AssignedCancelled AssignedSitterStatus = "cancelled"
)

// AssignedSitter is the denormalized view of the currently invited or
// accepted sitter, embedded in a session.
type AssignedSitter struct {
	ID           string
	Name         string
	Email        string
	UserID       string // bound on acceptance, empty before
	InviteStatus AssignedSitterStatus
	InviteID     string
}

// SessionItem is a caregiving session. It owns zero-or-one AssignedSitter;
// a session's invite and assigned sitter are 1:1.
type SessionItem struct {
	ID             string
	NestID         string
	NestName       string
	Title          string
	OwnerID        string
	StartsAt       time.Time
	EndsAt         time.Time
	AssignedSitter *AssignedSitter // nil when no sitter linked
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

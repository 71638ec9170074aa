package domain

import "time"

// SitterSession is the sitter-side materialization of a session after a
// successful invite acceptance, bound to the accepting user's account.
type SitterSession struct {
	ID         string
	SessionID  string
	InviteID   string
	UserID     string
	NestID     string
	NestName   string
	AcceptedAt time.Time
	CreatedAt  time.Time
}

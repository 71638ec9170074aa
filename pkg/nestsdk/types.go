package nestsdk

import "time"

// ErrorResponse is the wire shape of every non-2xx JSON response from the
// session service.
type ErrorResponse struct {
	// Code is the machine-readable error code (e.g. "invite_expired")
	Code string `json:"code"`

	// Message is a human-readable description of the error
	Message string `json:"message"`
}

// Sitter is a saved sitter in a caregiver's directory.
type Sitter struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SitterRequest creates or updates a directory entry. ID is optional on
// create: mobile clients may supply their locally generated UUID, otherwise
// the server assigns one.
type SitterRequest struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AssignedSitter is the session-embedded view of the invited or accepted
// sitter.
type AssignedSitter struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	InviteStatus string `json:"invite_status"`
	InviteID     string `json:"invite_id,omitempty"`
}

// Session is a caregiving session as returned to its owner.
type Session struct {
	ID             string          `json:"id"`
	NestID         string          `json:"nest_id"`
	NestName       string          `json:"nest_name"`
	Title          string          `json:"title,omitempty"`
	StartsAt       time.Time       `json:"starts_at"`
	EndsAt         time.Time       `json:"ends_at"`
	AssignedSitter *AssignedSitter `json:"assigned_sitter,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SessionRequest creates a new session.
type SessionRequest struct {
	NestID   string    `json:"nest_id"`
	NestName string    `json:"nest_name"`
	Title    string    `json:"title,omitempty"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// Invite is an invite as returned to the caregiver who created it. Code is
// the display form (XXX-XXX).
type Invite struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	NestID      string    `json:"nest_id"`
	NestName    string    `json:"nest_name"`
	SessionID   string    `json:"session_id"`
	SitterEmail string    `json:"sitter_email,omitempty"`
	SitterName  string    `json:"sitter_name,omitempty"`
	Status      string    `json:"status"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// InviteRequest creates an invite for a session. All fields empty means an
// open invite anyone with the code may accept.
type InviteRequest struct {
	SitterID    string `json:"sitter_id,omitempty"`
	SitterEmail string `json:"sitter_email,omitempty"`
	SitterName  string `json:"sitter_name,omitempty"`
}

// InviteUpdateRequest re-addresses a pending invite.
type InviteUpdateRequest struct {
	SitterEmail string `json:"sitter_email"`
	SitterName  string `json:"sitter_name"`
}

// ShareLinks is the shareable bundle for one invite.
type ShareLinks struct {
	Code     string `json:"code"`
	DeepLink string `json:"deep_link"`
	WebURL   string `json:"web_url"`
}

// JoinRequest carries a typed or scanned invite code. Raw, formatted and
// deep-link forms are all accepted.
type JoinRequest struct {
	Code string `json:"code"`
}

// JoinPreview is the read-only result of validating a code before accepting.
type JoinPreview struct {
	Invite  Invite      `json:"invite"`
	Session JoinSession `json:"session"`
}

// JoinSession is the subset of session detail shown to a sitter before they
// accept.
type JoinSession struct {
	ID       string    `json:"id"`
	NestName string    `json:"nest_name"`
	Title    string    `json:"title,omitempty"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// SitterSession is a sitter's view of a session they joined.
type SitterSession struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	InviteID   string    `json:"invite_id"`
	NestID     string    `json:"nest_id"`
	NestName   string    `json:"nest_name"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// SelectionRequest picks (or toggles) a sitter during invite editing.
type SelectionRequest struct {
	Sitter SitterRequest `json:"sitter"`
}

// SelectionResponse reports the outcome of a selection step.
type SelectionResponse struct {
	RequiresConfirmation bool `json:"requires_confirmation"`
	UnsavedChanges       bool `json:"unsaved_changes"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}

package http

import (
	"errors"
	"net/http"

	"github.com/nestnote/nestnote/internal/session/service"
	"github.com/nestnote/nestnote/pkg/nestsdk"
	"github.com/nestnote/nestnote/pkg/slogx"
)

// writeServiceError maps service sentinels onto the shared API error shapes.
// Anything unrecognized is logged and reported as a 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSitter),
		errors.Is(err, service.ErrInvalidSession),
		errors.Is(err, service.ErrInvalidInvite):
		nestsdk.ErrInvalidRequest.WriteError(w)

	case errors.Is(err, service.ErrInvalidCode):
		nestsdk.ErrInvalidCode.WriteError(w)

	case errors.Is(err, service.ErrSitterNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrInviteNotFound):
		nestsdk.ErrNotFound.WriteError(w)

	case errors.Is(err, service.ErrSessionForbidden),
		errors.Is(err, service.ErrInviteForbidden):
		nestsdk.ErrForbidden.WriteError(w)

	case errors.Is(err, service.ErrInviteExpired):
		nestsdk.ErrInviteExpired.WriteError(w)

	case errors.Is(err, service.ErrInviteAlreadyAccepted):
		nestsdk.ErrInviteAlreadyAccepted.WriteError(w)

	case errors.Is(err, service.ErrInviteRevoked):
		nestsdk.ErrInviteRevoked.WriteError(w)

	case errors.Is(err, service.ErrInviteFinalized):
		nestsdk.ErrInviteFinalized.WriteError(w)

	case errors.Is(err, service.ErrSelectionNotStarted),
		errors.Is(err, service.ErrNoPendingSelection),
		errors.Is(err, service.ErrEmptySelection):
		nestsdk.ErrSelectionConflict.WriteError(w)

	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		nestsdk.ErrServerError.WriteError(w)
	}
}

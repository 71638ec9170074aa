package http

import (
	"encoding/json"
	"net/http"

	"github.com/nestnote/nestnote/internal/session/service"
	"github.com/nestnote/nestnote/pkg/httpx"
	"github.com/nestnote/nestnote/pkg/nestsdk"
)

type JoinHandler struct {
	JoinService *service.JoinService
}

// HandleValidate godoc
//
//	@Summary		Validate Invite Code
//	@Description	Resolves a typed or scanned invite code to a join preview without changing anything. Public endpoint, strictly rate limited per IP and code.
//	@Tags			Join
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nestsdk.JoinRequest	true	"Invite code"
//	@Success		200		{object}	nestsdk.JoinPreview
//	@Failure		400		{object}	nestsdk.ErrorResponse
//	@Failure		404		{object}	nestsdk.ErrorResponse
//	@Failure		409		{object}	nestsdk.ErrorResponse
//	@Router			/v1/join/validate [post].
func (h *JoinHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nestsdk.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nestsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sess, inv, err := h.JoinService.ValidateInvite(ctx, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nestsdk.JoinPreview{
		Invite: toSDKInvite(inv),
		Session: nestsdk.JoinSession{
			ID:       sess.ID,
			NestName: sess.NestName,
			Title:    sess.Title,
			StartsAt: sess.StartsAt,
			EndsAt:   sess.EndsAt,
		},
	})
}

// HandleAccept godoc
//
//	@Summary		Accept Invite
//	@Description	Accepts the invite as the authenticated sitter. When two sitters race on the same code exactly one wins; the loser gets invite_already_accepted.
//	@Tags			Join
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nestsdk.JoinRequest	true	"Invite code"
//	@Success		201		{object}	nestsdk.SitterSession
//	@Failure		400		{object}	nestsdk.ErrorResponse
//	@Failure		409		{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/join/accept [post].
func (h *JoinHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nestsdk.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nestsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	ss, err := h.JoinService.ValidateAndAcceptInvite(ctx, req.Code, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSDKSitterSession(ss))
}

// HandleDecline godoc
//
//	@Summary		Decline Invite
//	@Description	Declines the invite as the authenticated sitter. The invite becomes terminal and the caregiver sees the outcome.
//	@Tags			Join
//	@Accept			json
//	@Param			request	body	nestsdk.JoinRequest	true	"Invite code"
//	@Success		204
//	@Failure		400	{object}	nestsdk.ErrorResponse
//	@Failure		409	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/join/decline [post].
func (h *JoinHandler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nestsdk.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nestsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.JoinService.DeclineInvite(ctx, req.Code, httpx.UserIDFromCtx(ctx)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

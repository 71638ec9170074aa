package http

import (
	"encoding/json"
	"net/http"

	"github.com/nestnote/nestnote/internal/session/service"
	"github.com/nestnote/nestnote/pkg/httpx"
	"github.com/nestnote/nestnote/pkg/nestsdk"
)

type InvitesHandler struct {
	InviteService *service.InviteService
}

// HandleCreate godoc
//
//	@Summary		Create Invite
//	@Description	Invites a sitter to the session. An empty body creates an open invite anyone with the code may accept. Any prior pending invite for the session is replaced.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Session ID"
//	@Param			request	body		nestsdk.InviteRequest	false	"Sitter to invite"
//	@Success		201		{object}	nestsdk.Invite
//	@Failure		400		{object}	nestsdk.ErrorResponse
//	@Failure		404		{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sessions/{id}/invite [post].
func (h *InvitesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := httpx.UserIDFromCtx(ctx)
	sessionID := r.PathValue("id")

	var req nestsdk.InviteRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			nestsdk.ErrInvalidRequest.WriteError(w)
			return
		}
	}

	if req.SitterEmail == "" && req.SitterName == "" && req.SitterID == "" {
		created, err := h.InviteService.CreateOpenInvite(ctx, actorID, sessionID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toSDKInvite(created))
		return
	}

	created, err := h.InviteService.CreateInvite(ctx, actorID, sessionID, req.SitterID, req.SitterEmail, req.SitterName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSDKInvite(created))
}

// HandleGet godoc
//
//	@Summary		Get Invite
//	@Description	Fetches one of the caller's invites.
//	@Tags			Invites
//	@Produce		json
//	@Param			id	path		string	true	"Invite ID"
//	@Success		200	{object}	nestsdk.Invite
//	@Failure		403	{object}	nestsdk.ErrorResponse
//	@Failure		404	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invites/{id} [get].
func (h *InvitesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	inv, err := h.InviteService.GetInvite(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKInvite(inv))
}

// HandleUpdate godoc
//
//	@Summary		Update Invite
//	@Description	Re-addresses a pending invite to a different sitter. The code and expiry are preserved.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Invite ID"
//	@Param			request	body		nestsdk.InviteUpdateRequest	true	"New sitter"
//	@Success		200		{object}	nestsdk.Invite
//	@Failure		400		{object}	nestsdk.ErrorResponse
//	@Failure		409		{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invites/{id} [patch].
func (h *InvitesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nestsdk.InviteUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nestsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	updated, err := h.InviteService.UpdateInvite(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"), req.SitterEmail, req.SitterName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKInvite(updated))
}

// HandleDelete godoc
//
//	@Summary		Delete Invite
//	@Description	Removes the invite and resets the session's sitter linkage.
//	@Tags			Invites
//	@Param			id	path	string	true	"Invite ID"
//	@Success		204
//	@Failure		404	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invites/{id} [delete].
func (h *InvitesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.InviteService.DeleteInvite(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCancel godoc
//
//	@Summary		Cancel Invite
//	@Description	Revokes a pending invite without deleting it, so the code reads back as revoked.
//	@Tags			Invites
//	@Param			id	path	string	true	"Invite ID"
//	@Success		204
//	@Failure		404	{object}	nestsdk.ErrorResponse
//	@Failure		409	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invites/{id}/cancel [post].
func (h *InvitesHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.InviteService.CancelInvite(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

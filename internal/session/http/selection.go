package http

import (
	"encoding/json"
	"net/http"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/internal/session/service"
	"github.com/nestnote/nestnote/pkg/httpx"
	"github.com/nestnote/nestnote/pkg/nestsdk"
)

type SelectionHandler struct {
	SelectionService *service.SelectionService
}

// HandleBegin godoc
//
//	@Summary		Begin Sitter Selection
//	@Description	Opens a transient invite-editing state for the session, seeded from its active invite.
//	@Tags			Selection
//	@Param			id	path	string	true	"Session ID"
//	@Success		204
//	@Failure		403	{object}	nestsdk.ErrorResponse
//	@Failure		404	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sessions/{id}/selection/begin [post].
func (h *SelectionHandler) HandleBegin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.SelectionService.Begin(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSelect godoc
//
//	@Summary		Select Sitter
//	@Description	Picks a sitter in the editing state. Picking the already-selected sitter deselects. Picking over a different sitter's live invite reports requires_confirmation.
//	@Tags			Selection
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Session ID"
//	@Param			request	body		nestsdk.SelectionRequest	true	"Sitter to pick"
//	@Success		200		{object}	nestsdk.SelectionResponse
//	@Failure		400		{object}	nestsdk.ErrorResponse
//	@Failure		409		{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sessions/{id}/selection/select [post].
func (h *SelectionHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := r.PathValue("id")

	var req nestsdk.SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nestsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	actorID := httpx.UserIDFromCtx(ctx)
	confirm, err := h.SelectionService.Select(ctx, actorID, sessionID, domain.SitterItem{
		ID:    req.Sitter.ID,
		Name:  req.Sitter.Name,
		Email: req.Sitter.Email,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	dirty, err := h.SelectionService.HasUnsavedChanges(actorID, sessionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nestsdk.SelectionResponse{
		RequiresConfirmation: confirm,
		UnsavedChanges:       dirty,
	})
}

// HandleConfirm godoc
//
//	@Summary		Confirm Selection
//	@Description	Promotes the held selection, deleting the invite it replaces.
//	@Tags			Selection
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	nestsdk.SelectionResponse
//	@Failure		409	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sessions/{id}/selection/confirm [post].
func (h *SelectionHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := r.PathValue("id")

	actorID := httpx.UserIDFromCtx(ctx)
	if err := h.SelectionService.Confirm(ctx, actorID, sessionID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	dirty, err := h.SelectionService.HasUnsavedChanges(actorID, sessionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nestsdk.SelectionResponse{UnsavedChanges: dirty})
}

// HandleStatus godoc
//
//	@Summary		Selection Status
//	@Description	Reports whether the editing state diverges from the persisted invite.
//	@Tags			Selection
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	nestsdk.SelectionResponse
//	@Failure		409	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sessions/{id}/selection [get].
func (h *SelectionHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dirty, err := h.SelectionService.HasUnsavedChanges(httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nestsdk.SelectionResponse{UnsavedChanges: dirty})
}

// HandleCommit godoc
//
//	@Summary		Commit Selection
//	@Description	Persists the selection as an invite: an update when the live invite survived the edit, a fresh create otherwise.
//	@Tags			Selection
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		201	{object}	nestsdk.Invite
//	@Failure		409	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sessions/{id}/selection/commit [post].
func (h *SelectionHandler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	inv, err := h.SelectionService.Commit(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSDKInvite(inv))
}

// HandleEnd godoc
//
//	@Summary		End Selection
//	@Description	Discards the session's editing state. Uncommitted selections are lost.
//	@Tags			Selection
//	@Param			id	path	string	true	"Session ID"
//	@Success		204
//	@Failure		403	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sessions/{id}/selection [delete].
func (h *SelectionHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.SelectionService.End(httpx.UserIDFromCtx(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

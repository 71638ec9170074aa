package http

import (
	"encoding/json"
	"net/http"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/internal/session/service"
	"github.com/nestnote/nestnote/pkg/httpx"
	"github.com/nestnote/nestnote/pkg/nestsdk"
)

type SittersHandler struct {
	DirectoryService *service.DirectoryService
}

// HandleList godoc
//
//	@Summary		List Saved Sitters
//	@Description	Returns the caller's saved sitter directory. The optional q parameter filters by case-insensitive substring over name or email.
//	@Tags			Sitters
//	@Produce		json
//	@Param			q	query		string	false	"Substring filter"
//	@Success		200	{array}		nestsdk.Sitter
//	@Failure		401	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sitters [get].
func (h *SittersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := httpx.UserIDFromCtx(ctx)

	sitters, err := h.DirectoryService.SearchSavedSitters(ctx, accountID, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKSitters(sitters))
}

// HandleAdd godoc
//
//	@Summary		Add Saved Sitter
//	@Description	Saves a sitter to the caller's directory. Re-adding the same ID is an idempotent upsert.
//	@Tags			Sitters
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nestsdk.SitterRequest	true	"Sitter"
//	@Success		201		{object}	nestsdk.Sitter
//	@Failure		400		{object}	nestsdk.ErrorResponse
//	@Failure		401		{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sitters [post].
func (h *SittersHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nestsdk.SitterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nestsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	added, err := h.DirectoryService.AddSavedSitter(ctx, domain.SitterItem{
		ID:        req.ID,
		AccountID: httpx.UserIDFromCtx(ctx),
		Name:      req.Name,
		Email:     req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSDKSitter(added))
}

// HandleUpdate godoc
//
//	@Summary		Update Saved Sitter
//	@Description	Edits an existing directory entry in place. The entry is never absent between the old and new record.
//	@Tags			Sitters
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Sitter ID"
//	@Param			request	body		nestsdk.SitterRequest	true	"Sitter"
//	@Success		200		{object}	nestsdk.Sitter
//	@Failure		400		{object}	nestsdk.ErrorResponse
//	@Failure		404		{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sitters/{id} [put].
func (h *SittersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nestsdk.SitterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nestsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	updated, err := h.DirectoryService.UpdateSavedSitter(ctx, domain.SitterItem{
		ID:        r.PathValue("id"),
		AccountID: httpx.UserIDFromCtx(ctx),
		Name:      req.Name,
		Email:     req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKSitter(updated))
}

// HandleDelete godoc
//
//	@Summary		Delete Saved Sitter
//	@Description	Removes a directory entry. Deleting an absent entry succeeds.
//	@Tags			Sitters
//	@Param			id	path	string	true	"Sitter ID"
//	@Success		204
//	@Failure		401	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sitters/{id} [delete].
func (h *SittersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.DirectoryService.DeleteSavedSitter(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

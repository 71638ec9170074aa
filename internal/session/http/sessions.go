package http

import (
	"encoding/json"
	"net/http"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/internal/session/service"
	"github.com/nestnote/nestnote/pkg/httpx"
	"github.com/nestnote/nestnote/pkg/nestsdk"
)

type SessionsHandler struct {
	SessionService *service.SessionService
}

// HandleCreate godoc
//
//	@Summary		Create Session
//	@Description	Creates a caregiving session owned by the caller.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nestsdk.SessionRequest	true	"Session"
//	@Success		201		{object}	nestsdk.Session
//	@Failure		400		{object}	nestsdk.ErrorResponse
//	@Failure		401		{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sessions [post].
func (h *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nestsdk.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nestsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	created, err := h.SessionService.CreateSession(ctx, domain.SessionItem{
		NestID:   req.NestID,
		NestName: req.NestName,
		Title:    req.Title,
		OwnerID:  httpx.UserIDFromCtx(ctx),
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSDKSession(created))
}

// HandleGet godoc
//
//	@Summary		Get Session
//	@Description	Fetches one of the caller's sessions, including its assigned sitter.
//	@Tags			Sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	nestsdk.Session
//	@Failure		403	{object}	nestsdk.ErrorResponse
//	@Failure		404	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sessions/{id} [get].
func (h *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := h.SessionService.GetSession(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKSession(sess))
}

// HandleList godoc
//
//	@Summary		List Sessions
//	@Description	Returns the caller's sessions, newest first.
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{array}		nestsdk.Session
//	@Failure		401	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sessions [get].
func (h *SessionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessions, err := h.SessionService.ListSessions(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKSessions(sessions))
}

// HandleListSitterSessions godoc
//
//	@Summary		List Sitter Sessions
//	@Description	Returns the sessions the caller has joined as a sitter.
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{array}		nestsdk.SitterSession
//	@Failure		401	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/sitter-sessions [get].
func (h *SessionsHandler) HandleListSitterSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessions, err := h.SessionService.ListSitterSessions(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKSitterSessions(sessions))
}

package http

import (
	"net/http"
	"strconv"

	"github.com/nestnote/nestnote/internal/session/service"
	"github.com/nestnote/nestnote/pkg/httpx"
	"github.com/nestnote/nestnote/pkg/nestsdk"
	"github.com/nestnote/nestnote/pkg/sharelink"
)

type InviteShareHandler struct {
	InviteService *service.InviteService
}

// HandleShare godoc
//
//	@Summary		Invite Share Links
//	@Description	Returns the display code, nestnote:// deep link and web fallback URL for a pending invite.
//	@Tags			Invites
//	@Produce		json
//	@Param			id	path		string	true	"Invite ID"
//	@Success		200	{object}	nestsdk.ShareLinks
//	@Failure		404	{object}	nestsdk.ErrorResponse
//	@Failure		409	{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invites/{id}/share [get].
func (h *InviteShareHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	links, err := h.InviteService.ShareLinks(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nestsdk.ShareLinks{
		Code:     links.Code,
		DeepLink: links.DeepLink,
		WebURL:   links.WebURL,
	})
}

// HandleQR godoc
//
//	@Summary		Invite QR Code
//	@Description	Renders the invite's deep link as a PNG QR image. The optional size parameter sets the pixel width (default 256).
//	@Tags			Invites
//	@Produce		png
//	@Param			id		path		string	true	"Invite ID"
//	@Param			size	query		int		false	"Image size in pixels"
//	@Success		200		{file}		binary
//	@Failure		404		{object}	nestsdk.ErrorResponse
//	@Failure		409		{object}	nestsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invites/{id}/qr [get].
func (h *InviteShareHandler) HandleQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	links, err := h.InviteService.ShareLinks(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	size := sharelink.DefaultQRSize
	if s := r.URL.Query().Get("size"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed <= 0 || parsed > 2048 {
			nestsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		size = parsed
	}

	img, err := links.QRPNG(size)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

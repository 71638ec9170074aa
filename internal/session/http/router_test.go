package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	httpapi "github.com/nestnote/nestnote/internal/session/http"
	"github.com/nestnote/nestnote/internal/session/service"
	"github.com/nestnote/nestnote/internal/session/store/drivers/sqlite"
	"github.com/nestnote/nestnote/pkg/jwtx"
	"github.com/nestnote/nestnote/pkg/nestsdk"
)

// The suite drives the full router through the nestsdk client against a real
// in-memory store, so handler wiring, middleware and the SDK wire types are
// all exercised together.

const testIssuer = "nestnote-identity"

var testSecret = []byte("router-test-secret")

var (
	caregiverScopes = []string{
		"sitters:read", "sitters:write",
		"sessions:read", "sessions:write",
		"invites:read", "invites:write",
	}
	sitterScopes = []string{"join:read", "join:write"}
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	invites := &service.InviteService{Store: st}

	router := httpapi.NewRouter(
		&jwtx.HS256Verifier{Secret: testSecret, Issuer: testIssuer},
		"test",
		st,
		slog.Default(),
	)
	router.DirectoryService = &service.DirectoryService{Store: st}
	router.SessionService = &service.SessionService{Store: st}
	router.InviteService = invites
	router.JoinService = &service.JoinService{Store: st}
	router.SelectionService = service.NewSelectionService(st, invites)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func mintToken(t *testing.T, subject, email, name string, scopes []string) string {
	t.Helper()

	claims := jwtx.NewClaims(subject, email, name, scopes, testIssuer, time.Hour, time.Now().UTC())
	token, err := jwtx.SignHS256(claims, testSecret)
	require.NoError(t, err)
	return token
}

func caregiverClient(t *testing.T, srv *httptest.Server, subject string) *nestsdk.Client {
	t.Helper()
	return nestsdk.NewClient(srv.URL, mintToken(t, subject, subject+"@example.com", "Caregiver", caregiverScopes))
}

func sitterClient(t *testing.T, srv *httptest.Server, subject string) *nestsdk.Client {
	t.Helper()
	return nestsdk.NewClient(srv.URL, mintToken(t, subject, subject+"@example.com", "Sitter", sitterScopes))
}

func createSession(t *testing.T, c *nestsdk.Client) *nestsdk.Session {
	t.Helper()

	now := time.Now().UTC()
	sess, err := c.CreateSession(context.Background(), nestsdk.SessionRequest{
		NestID:   "nest-1",
		NestName: "The Parker Nest",
		Title:    "Saturday evening",
		StartsAt: now.Add(24 * time.Hour),
		EndsAt:   now.Add(28 * time.Hour),
	})
	require.NoError(t, err)
	return sess
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *nestsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	if code != "" {
		require.Equal(t, code, apiErr.Code)
	}
}

func TestRouterHealth(t *testing.T) {
	srv := newTestServer(t)

	c := nestsdk.NewClient(srv.URL, "")
	require.NoError(t, c.Health(context.Background()))
}

func TestRouterRejectsMissingToken(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)

	c := nestsdk.NewClient(srv.URL, "")
	_, err := c.ListSessions(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "")
}

func TestRouterRejectsInsufficientScope(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)

	// A join-only token cannot touch caregiver resources.
	c := sitterClient(t, srv, "sit-1")
	_, err := c.ListSessions(ctx)
	requireAPIError(t, err, http.StatusForbidden, "")
}

func TestRouterSitterDirectory(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	c := caregiverClient(t, srv, "cg-1")

	added, err := c.AddSitter(ctx, nestsdk.SitterRequest{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)

	_, err = c.AddSitter(ctx, nestsdk.SitterRequest{Name: "Ben", Email: "ben@example.com"})
	require.NoError(t, err)

	sitters, err := c.ListSitters(ctx, "")
	require.NoError(t, err)
	require.Len(t, sitters, 2)

	sitters, err = c.ListSitters(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, sitters, 1)
	require.Equal(t, "Ana", sitters[0].Name)

	updated, err := c.UpdateSitter(ctx, added.ID, nestsdk.SitterRequest{Name: "Ana P.", Email: "ana@example.com"})
	require.NoError(t, err)
	require.Equal(t, "Ana P.", updated.Name)

	require.NoError(t, c.DeleteSitter(ctx, added.ID))
	// Deleting again is a no-op.
	require.NoError(t, c.DeleteSitter(ctx, added.ID))

	t.Run("rejects a bad email", func(t *testing.T) {
		_, err := c.AddSitter(ctx, nestsdk.SitterRequest{Name: "Eve", Email: "not-an-email"})
		requireAPIError(t, err, http.StatusBadRequest, nestsdk.ErrorCodeInvalidRequest)
	})

	t.Run("directories are per account", func(t *testing.T) {
		other := caregiverClient(t, srv, "cg-2")
		sitters, err := other.ListSitters(ctx, "")
		require.NoError(t, err)
		require.Empty(t, sitters)
	})
}

func TestRouterSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	c := caregiverClient(t, srv, "cg-1")

	sess := createSession(t, c)
	require.NotEmpty(t, sess.ID)
	require.Nil(t, sess.AssignedSitter)

	got, err := c.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, sess.ID, got.ID)
	require.Equal(t, "The Parker Nest", got.NestName)

	sessions, err := c.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	t.Run("missing session is 404", func(t *testing.T) {
		_, err := c.GetSession(ctx, "no-such-session")
		requireAPIError(t, err, http.StatusNotFound, nestsdk.ErrorCodeNotFound)
	})

	t.Run("another account is 403", func(t *testing.T) {
		other := caregiverClient(t, srv, "cg-2")
		_, err := other.GetSession(ctx, sess.ID)
		requireAPIError(t, err, http.StatusForbidden, nestsdk.ErrorCodeForbidden)
	})
}

func TestRouterInviteLifecycle(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	c := caregiverClient(t, srv, "cg-1")

	sess := createSession(t, c)

	inv, err := c.CreateInvite(ctx, sess.ID, nestsdk.InviteRequest{
		SitterEmail: "ana@example.com",
		SitterName:  "Ana",
	})
	require.NoError(t, err)
	require.Equal(t, "pending", inv.Status)
	require.Len(t, inv.Code, 7, "codes are shown in XXX-XXX form")
	require.Equal(t, byte('-'), inv.Code[3])

	got, err := c.GetInvite(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", got.SitterEmail)

	// The invite projects onto the owning session.
	gotSess, err := c.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, gotSess.AssignedSitter)
	require.Equal(t, "invited", gotSess.AssignedSitter.InviteStatus)

	updated, err := c.UpdateInvite(ctx, inv.ID, nestsdk.InviteUpdateRequest{
		SitterEmail: "ben@example.com",
		SitterName:  "Ben",
	})
	require.NoError(t, err)
	require.Equal(t, "ben@example.com", updated.SitterEmail)
	require.Equal(t, inv.Code, updated.Code, "re-addressing keeps the code")

	links, err := c.GetShareLinks(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, inv.Code, links.Code)
	require.Contains(t, links.DeepLink, "nestnote://invite?code=")
	require.Contains(t, links.WebURL, "/invite?code=")

	t.Run("qr renders a png", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/invites/"+inv.ID+"/qr", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+c.Token)

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "image/png", resp.Header.Get("Content-Type"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Greater(t, len(body), 8)
		require.Equal(t, "\x89PNG", string(body[:4]))
	})

	t.Run("cancel keeps the row terminal", func(t *testing.T) {
		require.NoError(t, c.CancelInvite(ctx, inv.ID))

		_, err := nestsdk.NewClient(srv.URL, "").ValidateInvite(ctx, inv.Code)
		requireAPIError(t, err, http.StatusConflict, nestsdk.ErrorCodeInviteRevoked)

		err = c.CancelInvite(ctx, inv.ID)
		requireAPIError(t, err, http.StatusConflict, nestsdk.ErrorCodeInviteFinalized)
	})

	t.Run("delete unlinks the session", func(t *testing.T) {
		require.NoError(t, c.DeleteInvite(ctx, inv.ID))

		_, err := c.GetInvite(ctx, inv.ID)
		requireAPIError(t, err, http.StatusNotFound, nestsdk.ErrorCodeNotFound)

		gotSess, err := c.GetSession(ctx, sess.ID)
		require.NoError(t, err)
		require.Nil(t, gotSess.AssignedSitter)
	})
}

func TestRouterJoinFlow(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	caregiver := caregiverClient(t, srv, "cg-1")
	sitter := sitterClient(t, srv, "sit-1")

	sess := createSession(t, caregiver)
	inv, err := caregiver.CreateInvite(ctx, sess.ID, nestsdk.InviteRequest{
		SitterEmail: "sit-1@example.com",
		SitterName:  "Ana",
	})
	require.NoError(t, err)

	// Validation is public and read-only.
	preview, err := nestsdk.NewClient(srv.URL, "").ValidateInvite(ctx, inv.Code)
	require.NoError(t, err)
	require.Equal(t, sess.ID, preview.Session.ID)
	require.Equal(t, "The Parker Nest", preview.Session.NestName)

	ss, err := sitter.AcceptInvite(ctx, inv.Code)
	require.NoError(t, err)
	require.Equal(t, sess.ID, ss.SessionID)
	require.Equal(t, inv.ID, ss.InviteID)

	joined, err := sitter.ListSitterSessions(ctx)
	require.NoError(t, err)
	require.Len(t, joined, 1)

	gotSess, err := caregiver.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, gotSess.AssignedSitter)
	require.Equal(t, "accepted", gotSess.AssignedSitter.InviteStatus)
	require.Equal(t, "sit-1", gotSess.AssignedSitter.UserID)

	t.Run("second accept loses", func(t *testing.T) {
		other := sitterClient(t, srv, "sit-2")
		_, err := other.AcceptInvite(ctx, inv.Code)
		requireAPIError(t, err, http.StatusConflict, nestsdk.ErrorCodeInviteAlreadyAccepted)
	})

	t.Run("garbage code is 400", func(t *testing.T) {
		_, err := sitter.AcceptInvite(ctx, "not a code")
		requireAPIError(t, err, http.StatusBadRequest, nestsdk.ErrorCodeInvalidCode)
	})

	t.Run("decline is terminal", func(t *testing.T) {
		declineSess := createSession(t, caregiver)
		declineInv, err := caregiver.CreateInvite(ctx, declineSess.ID, nestsdk.InviteRequest{
			SitterEmail: "sit-2@example.com",
			SitterName:  "Ben",
		})
		require.NoError(t, err)

		other := sitterClient(t, srv, "sit-2")
		require.NoError(t, other.DeclineInvite(ctx, declineInv.Code))

		gotSess, err := caregiver.GetSession(ctx, declineSess.ID)
		require.NoError(t, err)
		require.NotNil(t, gotSess.AssignedSitter)
		require.Equal(t, "declined", gotSess.AssignedSitter.InviteStatus)
	})
}

func TestRouterSelectionFlow(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	c := caregiverClient(t, srv, "cg-1")

	sess := createSession(t, c)
	require.NoError(t, c.BeginSelection(ctx, sess.ID))

	status, err := c.SelectionStatus(ctx, sess.ID)
	require.NoError(t, err)
	require.False(t, status.UnsavedChanges)

	picked, err := c.SelectSitter(ctx, sess.ID, nestsdk.SelectionRequest{
		Sitter: nestsdk.SitterRequest{ID: "sitter-a", Name: "Ana", Email: "ana@example.com"},
	})
	require.NoError(t, err)
	require.False(t, picked.RequiresConfirmation)
	require.True(t, picked.UnsavedChanges)

	inv, err := c.CommitSelection(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", inv.SitterEmail)
	require.Equal(t, "pending", inv.Status)

	// Picking over Ana's now-live invite needs confirmation first.
	picked, err = c.SelectSitter(ctx, sess.ID, nestsdk.SelectionRequest{
		Sitter: nestsdk.SitterRequest{ID: "sitter-b", Name: "Ben", Email: "ben@example.com"},
	})
	require.NoError(t, err)
	require.True(t, picked.RequiresConfirmation)

	confirmed, err := c.ConfirmSelection(ctx, sess.ID)
	require.NoError(t, err)
	require.True(t, confirmed.UnsavedChanges)

	second, err := c.CommitSelection(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, "ben@example.com", second.SitterEmail)
	require.NotEqual(t, inv.ID, second.ID)

	require.NoError(t, c.EndSelection(ctx, sess.ID))

	_, err = c.SelectionStatus(ctx, sess.ID)
	requireAPIError(t, err, http.StatusConflict, nestsdk.ErrorCodeSelectionConflict)
}

func TestRouterSelectionScopedToOwner(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)
	owner := caregiverClient(t, srv, "cg-own")
	intruder := caregiverClient(t, srv, "cg-other")

	sess := createSession(t, owner)
	inv, err := owner.CreateInvite(ctx, sess.ID, nestsdk.InviteRequest{
		SitterEmail: "ana@example.com",
		SitterName:  "Ana",
	})
	require.NoError(t, err)
	require.NoError(t, owner.BeginSelection(ctx, sess.ID))

	// A different account with the same scopes gets 403 on every selection
	// endpoint and cannot reach the owner's invite through them.
	err = intruder.BeginSelection(ctx, sess.ID)
	requireAPIError(t, err, http.StatusForbidden, nestsdk.ErrorCodeForbidden)

	_, err = intruder.SelectSitter(ctx, sess.ID, nestsdk.SelectionRequest{
		Sitter: nestsdk.SitterRequest{ID: "sitter-x", Name: "Mallory", Email: "mallory@example.com"},
	})
	requireAPIError(t, err, http.StatusForbidden, nestsdk.ErrorCodeForbidden)

	_, err = intruder.ConfirmSelection(ctx, sess.ID)
	requireAPIError(t, err, http.StatusForbidden, nestsdk.ErrorCodeForbidden)

	_, err = intruder.SelectionStatus(ctx, sess.ID)
	requireAPIError(t, err, http.StatusForbidden, nestsdk.ErrorCodeForbidden)

	_, err = intruder.CommitSelection(ctx, sess.ID)
	requireAPIError(t, err, http.StatusForbidden, nestsdk.ErrorCodeForbidden)

	err = intruder.EndSelection(ctx, sess.ID)
	requireAPIError(t, err, http.StatusForbidden, nestsdk.ErrorCodeForbidden)

	// The owner's invite and editing state are untouched.
	got, err := owner.GetInvite(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, "pending", got.Status)

	status, err := owner.SelectionStatus(ctx, sess.ID)
	require.NoError(t, err)
	require.False(t, status.UnsavedChanges)
}

package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/pkg/idx"
)

func TestHousekeepingSweepCancelsExpiredInvites(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	invites := &InviteService{Store: st}

	// A live invite that must be left alone.
	liveSess := newTestSession(t, st, "owner-1")
	live, err := invites.CreateInvite(ctx, "owner-1", liveSess.ID, "", "ana@example.com", "Ana")
	require.NoError(t, err)

	// An invite already past its expiry.
	staleSess := newTestSession(t, st, "owner-1")
	now := time.Now().UTC()
	stale := domain.Invite{
		ID:          idx.New().String(),
		Code:        "246801",
		NestID:      staleSess.NestID,
		NestName:    staleSess.NestName,
		SessionID:   staleSess.ID,
		SitterEmail: "ben@example.com",
		SitterName:  "Ben",
		Status:      domain.InvitePending,
		CreatedBy:   "owner-1",
		ExpiresAt:   now.Add(-time.Minute),
		CreatedAt:   now.Add(-49 * time.Hour),
		UpdatedAt:   now.Add(-49 * time.Hour),
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, stale))
	require.NoError(t, st.Sessions().SetAssignedSitter(ctx, staleSess.ID, domain.AssignedSitter{
		Name:         stale.SitterName,
		Email:        stale.SitterEmail,
		InviteStatus: domain.AssignedInvited,
		InviteID:     stale.ID,
	}))

	hk := NewHousekeepingService(st, slog.Default(), time.Hour)
	hk.sweep()

	gotStale, err := st.Invites().GetInviteByID(ctx, stale.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InviteCancelled, gotStale.Status)

	gotSess, err := st.Sessions().GetSessionByID(ctx, staleSess.ID)
	require.NoError(t, err)
	require.NotNil(t, gotSess.AssignedSitter)
	require.Equal(t, domain.AssignedCancelled, gotSess.AssignedSitter.InviteStatus)

	gotLive, err := st.Invites().GetInviteByID(ctx, live.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitePending, gotLive.Status)
}

func TestHousekeepingStartStop(t *testing.T) {
	st := newTestStore(t)

	hk := NewHousekeepingService(st, slog.Default(), time.Hour)
	hk.Start()
	hk.Stop()
}

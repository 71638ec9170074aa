package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nestnote/nestnote/internal/session/domain"
)

func TestSessionCreateAndGet(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SessionService{Store: st}

	now := time.Now().UTC()
	created, err := svc.CreateSession(ctx, domain.SessionItem{
		NestID:   "nest-1",
		NestName: "The Parker Nest",
		Title:    "Friday evening",
		OwnerID:  "owner-1",
		StartsAt: now.Add(time.Hour),
		EndsAt:   now.Add(4 * time.Hour),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Nil(t, created.AssignedSitter)

	got, err := svc.GetSession(ctx, "owner-1", created.ID)
	require.NoError(t, err)
	require.Equal(t, "Friday evening", got.Title)

	t.Run("other accounts are locked out", func(t *testing.T) {
		_, err := svc.GetSession(ctx, "owner-2", created.ID)
		require.ErrorIs(t, err, ErrSessionForbidden)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.GetSession(ctx, "owner-1", "nope")
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("ends before it starts", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, domain.SessionItem{
			NestID:   "nest-1",
			NestName: "The Parker Nest",
			OwnerID:  "owner-1",
			StartsAt: now.Add(4 * time.Hour),
			EndsAt:   now.Add(time.Hour),
		})
		require.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestSessionList(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SessionService{Store: st}

	newTestSession(t, st, "owner-1")
	newTestSession(t, st, "owner-1")
	newTestSession(t, st, "owner-2")

	list, err := svc.ListSessions(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

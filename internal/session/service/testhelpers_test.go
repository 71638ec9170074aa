package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/internal/session/store"
	"github.com/nestnote/nestnote/internal/session/store/drivers/sqlite"
	"github.com/nestnote/nestnote/pkg/idx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestSession(t *testing.T, st store.Store, ownerID string) domain.SessionItem {
	t.Helper()

	now := time.Now().UTC()
	sess := domain.SessionItem{
		ID:        idx.New().String(),
		NestID:    idx.New().String(),
		NestName:  "The Parker Nest",
		Title:     "Saturday evening",
		OwnerID:   ownerID,
		StartsAt:  now.Add(24 * time.Hour),
		EndsAt:    now.Add(28 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Sessions().CreateSession(context.Background(), sess))
	return sess
}

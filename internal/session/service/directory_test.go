package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nestnote/nestnote/internal/session/domain"
)

func TestDirectoryAddAndList(t *testing.T) {
	ctx := context.Background()
	svc := &DirectoryService{Store: newTestStore(t)}

	added, err := svc.AddSavedSitter(ctx, domain.SitterItem{
		AccountID: "acct-1",
		Name:      "Jordan Reyes",
		Email:     "jordan+sits@example.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)

	list, err := svc.ListSavedSitters(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	// The plus-addressed email must survive the store round-trip intact.
	require.Equal(t, "jordan+sits@example.com", list[0].Email)
	require.Equal(t, "Jordan Reyes", list[0].Name)
}

func TestDirectoryAcceptsClientUUIDs(t *testing.T) {
	ctx := context.Background()
	svc := &DirectoryService{Store: newTestStore(t)}

	id := uuid.NewString()
	added, err := svc.AddSavedSitter(ctx, domain.SitterItem{
		ID:        id,
		AccountID: "acct-1",
		Name:      "Sam",
		Email:     "sam@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, id, added.ID)

	t.Run("rejects malformed ids", func(t *testing.T) {
		_, err := svc.AddSavedSitter(ctx, domain.SitterItem{
			ID:        "not-an-id",
			AccountID: "acct-1",
			Name:      "Sam",
			Email:     "sam@example.com",
		})
		require.ErrorIs(t, err, ErrInvalidSitter)
	})

	t.Run("rejects malformed emails", func(t *testing.T) {
		_, err := svc.AddSavedSitter(ctx, domain.SitterItem{
			AccountID: "acct-1",
			Name:      "Sam",
			Email:     "not-an-email",
		})
		require.ErrorIs(t, err, ErrInvalidSitter)
	})
}

func TestDirectoryUpdateIsAtomic(t *testing.T) {
	ctx := context.Background()
	svc := &DirectoryService{Store: newTestStore(t)}

	added, err := svc.AddSavedSitter(ctx, domain.SitterItem{
		AccountID: "acct-1",
		Name:      "Jordan",
		Email:     "jordan@example.com",
	})
	require.NoError(t, err)

	added.Email = "jordan.new@example.com"
	updated, err := svc.UpdateSavedSitter(ctx, added)
	require.NoError(t, err)
	require.Equal(t, added.ID, updated.ID)
	require.Equal(t, "jordan.new@example.com", updated.Email)

	// The sitter is never absent between the old and new record.
	list, err := svc.ListSavedSitters(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	t.Run("updating an unknown sitter fails", func(t *testing.T) {
		_, err := svc.UpdateSavedSitter(ctx, domain.SitterItem{
			ID:        uuid.NewString(),
			AccountID: "acct-1",
			Name:      "Ghost",
			Email:     "ghost@example.com",
		})
		require.ErrorIs(t, err, ErrSitterNotFound)
	})
}

func TestDirectoryDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := &DirectoryService{Store: newTestStore(t)}

	added, err := svc.AddSavedSitter(ctx, domain.SitterItem{
		AccountID: "acct-1",
		Name:      "Jordan",
		Email:     "jordan@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSavedSitter(ctx, "acct-1", added.ID))
	require.NoError(t, svc.DeleteSavedSitter(ctx, "acct-1", added.ID))

	list, err := svc.ListSavedSitters(ctx, "acct-1")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestDirectorySearch(t *testing.T) {
	ctx := context.Background()
	svc := &DirectoryService{Store: newTestStore(t)}

	fixtures := []domain.SitterItem{
		{AccountID: "acct-1", Name: "Jordan Reyes", Email: "jordan@example.com"},
		{AccountID: "acct-1", Name: "Sam Okafor", Email: "sam.okafor@mailhost.net"},
		{AccountID: "acct-2", Name: "Jordan Blake", Email: "jb@example.com"},
	}
	for _, f := range fixtures {
		_, err := svc.AddSavedSitter(ctx, f)
		require.NoError(t, err)
	}

	t.Run("matches name case-insensitively", func(t *testing.T) {
		got, err := svc.SearchSavedSitters(ctx, "acct-1", "JORDAN")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "Jordan Reyes", got[0].Name)
	})

	t.Run("matches email-only substrings", func(t *testing.T) {
		got, err := svc.SearchSavedSitters(ctx, "acct-1", "mailhost")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "Sam Okafor", got[0].Name)
	})

	t.Run("scoped to the account", func(t *testing.T) {
		got, err := svc.SearchSavedSitters(ctx, "acct-2", "jordan")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "Jordan Blake", got[0].Name)
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		got, err := svc.SearchSavedSitters(ctx, "acct-1", "")
		require.NoError(t, err)
		require.Len(t, got, 2)
	})
}

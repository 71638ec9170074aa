package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/internal/session/store"
	"github.com/nestnote/nestnote/pkg/idx"
	"github.com/nestnote/nestnote/pkg/slogx"
)

var (
	ErrInvalidSitter  = errors.New("invalid sitter")
	ErrSitterNotFound = errors.New("sitter not found")
)

// validate is shared across services; only Var-style checks are used.
var validate = validator.New(validator.WithRequiredStructEnabled())

// DirectoryService manages a caregiver's saved sitter list.
type DirectoryService struct {
	Store store.Store
}

// ListSavedSitters returns every saved sitter for an account.
func (s *DirectoryService) ListSavedSitters(ctx context.Context, accountID string) ([]domain.SitterItem, error) {
	if accountID == "" {
		return nil, ErrInvalidSitter
	}
	return s.Store.Sitters().ListSittersByAccount(ctx, accountID)
}

// AddSavedSitter validates and upserts a sitter record. The upsert is keyed
// by ID, so repeating an add is idempotent. Client-supplied IDs must be UUIDs
// (mobile clients generate them locally); absent IDs get a server ULID.
func (s *DirectoryService) AddSavedSitter(ctx context.Context, item domain.SitterItem) (domain.SitterItem, error) {
	log := slogx.FromContext(ctx)

	if err := validateSitter(&item); err != nil {
		log.Warn("rejected sitter payload",
			slog.String("account_id", item.AccountID),
			slog.Any("error", err),
		)
		return domain.SitterItem{}, err
	}

	if err := s.Store.Sitters().UpsertSitter(ctx, item); err != nil {
		log.Error("failed to upsert sitter",
			slog.String("sitter_id", item.ID),
			slog.Any("error", err),
		)
		return domain.SitterItem{}, err
	}

	log.Debug("sitter saved",
		slog.String("sitter_id", item.ID),
		slog.String("account_id", item.AccountID),
	)
	return item, nil
}

// UpdateSavedSitter edits an existing sitter in place. It is a single
// transactional upsert, so there is no delete-then-re-add window where a
// partial failure could drop the record.
func (s *DirectoryService) UpdateSavedSitter(ctx context.Context, item domain.SitterItem) (domain.SitterItem, error) {
	log := slogx.FromContext(ctx)

	if err := validateSitter(&item); err != nil {
		return domain.SitterItem{}, err
	}

	if _, err := s.Store.Sitters().GetSitterByID(ctx, item.AccountID, item.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.SitterItem{}, ErrSitterNotFound
		}
		log.Error("failed to fetch sitter", slog.Any("error", err))
		return domain.SitterItem{}, err
	}

	if err := s.Store.Sitters().UpsertSitter(ctx, item); err != nil {
		log.Error("failed to update sitter",
			slog.String("sitter_id", item.ID),
			slog.Any("error", err),
		)
		return domain.SitterItem{}, err
	}

	return item, nil
}

// DeleteSavedSitter removes a sitter. Deleting an absent sitter succeeds.
func (s *DirectoryService) DeleteSavedSitter(ctx context.Context, accountID, id string) error {
	if accountID == "" || id == "" {
		return ErrInvalidSitter
	}
	return s.Store.Sitters().DeleteSitter(ctx, accountID, id)
}

// SearchSavedSitters filters the directory by case-insensitive substring
// match over name OR email. It is a derived view; the backing store is never
// mutated by a search.
func (s *DirectoryService) SearchSavedSitters(ctx context.Context, accountID, query string) ([]domain.SitterItem, error) {
	sitters, err := s.ListSavedSitters(ctx, accountID)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return sitters, nil
	}

	var out []domain.SitterItem
	for _, sitter := range sitters {
		if strings.Contains(strings.ToLower(sitter.Name), query) ||
			strings.Contains(strings.ToLower(sitter.Email), query) {
			out = append(out, sitter)
		}
	}
	return out, nil
}

func validateSitter(item *domain.SitterItem) error {
	if item.AccountID == "" || strings.TrimSpace(item.Name) == "" {
		return ErrInvalidSitter
	}
	if err := validate.Var(item.Email, "required,email"); err != nil {
		return ErrInvalidSitter
	}

	switch {
	case item.ID == "":
		item.ID = idx.New().String()
	default:
		if _, err := uuid.Parse(item.ID); err != nil {
			if _, err := idx.Parse(item.ID); err != nil {
				return ErrInvalidSitter
			}
		}
	}
	return nil
}

package sqlite

import (
	"context"
	"time"

	"github.com/nestnote/nestnote/internal/session/domain"
)

type sittersRepo struct {
	q dbtx
}

func (r *sittersRepo) ListSittersByAccount(ctx context.Context, accountID string) ([]domain.SitterItem, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, account_id, name, email, created_at, updated_at
		FROM sitters
		WHERE account_id = ?
		ORDER BY created_at DESC`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SitterItem
	for rows.Next() {
		var s domain.SitterItem
		var email string
		if err := rows.Scan(&s.ID, &s.AccountID, &s.Name, &email, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if s.Email, err = decodeEmail(email); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sittersRepo) GetSitterByID(ctx context.Context, accountID, id string) (domain.SitterItem, error) {
	var s domain.SitterItem
	var email string
	err := r.q.QueryRowContext(ctx, `
		SELECT id, account_id, name, email, created_at, updated_at
		FROM sitters
		WHERE account_id = ? AND id = ?`,
		accountID, id,
	).Scan(&s.ID, &s.AccountID, &s.Name, &email, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.SitterItem{}, mapNotFound(err)
	}
	if s.Email, err = decodeEmail(email); err != nil {
		return domain.SitterItem{}, err
	}
	return s, nil
}

func (r *sittersRepo) UpsertSitter(ctx context.Context, s domain.SitterItem) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sitters (id, account_id, name, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			updated_at = excluded.updated_at`,
		s.ID, s.AccountID, s.Name, encodeEmail(s.Email), now, now,
	)
	return err
}

func (r *sittersRepo) DeleteSitter(ctx context.Context, accountID, id string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM sitters WHERE account_id = ? AND id = ?`,
		accountID, id,
	)
	return err
}

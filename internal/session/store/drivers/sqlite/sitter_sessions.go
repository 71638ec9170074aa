package sqlite

import (
	"context"
	"time"

	"github.com/nestnote/nestnote/internal/session/domain"
)

type sitterSessionsRepo struct {
	q dbtx
}

const sitterSessionColumns = `
	id, session_id, invite_id, user_id, nest_id, nest_name, accepted_at, created_at`

func (r *sitterSessionsRepo) CreateSitterSession(ctx context.Context, ss domain.SitterSession) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sitter_sessions (
			id, session_id, invite_id, user_id, nest_id, nest_name, accepted_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ss.ID, ss.SessionID, ss.InviteID, ss.UserID, ss.NestID, ss.NestName,
		ss.AcceptedAt, time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *sitterSessionsRepo) GetSitterSessionByInvite(ctx context.Context, inviteID string) (domain.SitterSession, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+sitterSessionColumns+` FROM sitter_sessions WHERE invite_id = ?`, inviteID)

	var ss domain.SitterSession
	err := row.Scan(&ss.ID, &ss.SessionID, &ss.InviteID, &ss.UserID, &ss.NestID, &ss.NestName, &ss.AcceptedAt, &ss.CreatedAt)
	if err != nil {
		return domain.SitterSession{}, mapNotFound(err)
	}
	return ss, nil
}

func (r *sitterSessionsRepo) ListSitterSessionsByUser(ctx context.Context, userID string) ([]domain.SitterSession, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+sitterSessionColumns+` FROM sitter_sessions WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SitterSession
	for rows.Next() {
		var ss domain.SitterSession
		if err := rows.Scan(&ss.ID, &ss.SessionID, &ss.InviteID, &ss.UserID, &ss.NestID, &ss.NestName, &ss.AcceptedAt, &ss.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}

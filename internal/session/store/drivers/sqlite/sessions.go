package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/internal/session/store"
)

type sessionsRepo struct {
	q dbtx
}

const sessionColumns = `
	id, nest_id, nest_name, title, owner_id, starts_at, ends_at,
	sitter_id, sitter_name, sitter_email, sitter_user_id,
	sitter_invite_status, sitter_invite_id,
	created_at, updated_at`

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.SessionItem) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sessions (
			id, nest_id, nest_name, title, owner_id, starts_at, ends_at,
			sitter_invite_status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.NestID, s.NestName, s.Title, s.OwnerID,
		mapTimeNull(s.StartsAt), mapTimeNull(s.EndsAt),
		string(domain.AssignedNone), now, now,
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.SessionItem, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

func (r *sessionsRepo) ListSessionsByOwner(ctx context.Context, ownerID string) ([]domain.SessionItem, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE owner_id = ? ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SessionItem
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sessionsRepo) SetAssignedSitter(ctx context.Context, sessionID string, as domain.AssignedSitter) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE sessions SET
			sitter_id = ?, sitter_name = ?, sitter_email = ?,
			sitter_user_id = ?, sitter_invite_status = ?, sitter_invite_id = ?,
			updated_at = ?
		WHERE id = ?`,
		mapStringNull(as.ID), mapStringNull(as.Name), mapStringNull(as.Email),
		mapStringNull(as.UserID), string(as.InviteStatus), mapStringNull(as.InviteID),
		time.Now().UTC(), sessionID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sessionsRepo) ClearAssignedSitter(ctx context.Context, sessionID string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE sessions SET
			sitter_id = NULL, sitter_name = NULL, sitter_email = NULL,
			sitter_user_id = NULL, sitter_invite_status = ?, sitter_invite_id = NULL,
			updated_at = ?
		WHERE id = ?`,
		string(domain.AssignedNone), time.Now().UTC(), sessionID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sessionsRepo) UpdateAssignedSitterStatus(ctx context.Context, sessionID string, status domain.AssignedSitterStatus, userID string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE sessions SET
			sitter_invite_status = ?,
			sitter_user_id = COALESCE(?, sitter_user_id),
			updated_at = ?
		WHERE id = ?`,
		string(status), mapStringNull(userID), time.Now().UTC(), sessionID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (domain.SessionItem, error) {
	var s domain.SessionItem
	var startsAt, endsAt sql.NullTime
	var sitterID, sitterName, sitterEmail, sitterUserID, sitterInviteID sql.NullString
	var inviteStatus string

	err := row.Scan(
		&s.ID, &s.NestID, &s.NestName, &s.Title, &s.OwnerID, &startsAt, &endsAt,
		&sitterID, &sitterName, &sitterEmail, &sitterUserID,
		&inviteStatus, &sitterInviteID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return domain.SessionItem{}, mapNotFound(err)
	}

	if startsAt.Valid {
		s.StartsAt = startsAt.Time
	}
	if endsAt.Valid {
		s.EndsAt = endsAt.Time
	}

	status := domain.AssignedSitterStatus(inviteStatus)
	if sitterID.Valid || sitterEmail.Valid || status != domain.AssignedNone {
		s.AssignedSitter = &domain.AssignedSitter{
			ID:           mapNullString(sitterID),
			Name:         mapNullString(sitterName),
			Email:        mapNullString(sitterEmail),
			UserID:       mapNullString(sitterUserID),
			InviteStatus: status,
			InviteID:     mapNullString(sitterInviteID),
		}
	}
	return s, nil
}

func mapTimeNull(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// requireRow maps a zero-row update to store.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

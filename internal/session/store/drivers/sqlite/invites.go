package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/nestnote/nestnote/internal/session/domain"
)

type invitesRepo struct {
	q dbtx
}

const inviteColumns = `
	id, code, nest_id, nest_name, session_id, sitter_email, sitter_name,
	status, created_by, accepted_by, expires_at, created_at, updated_at`

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invites (
			id, code, nest_id, nest_name, session_id, sitter_email, sitter_name,
			status, created_by, expires_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Code, inv.NestID, inv.NestName, inv.SessionID,
		inv.SitterEmail, inv.SitterName,
		string(inv.Status), inv.CreatedBy, inv.ExpiresAt, now, now,
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByID(ctx context.Context, id string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE id = ?`, id)
	return scanInvite(row)
}

func (r *invitesRepo) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE code = ?`, code)
	return scanInvite(row)
}

func (r *invitesRepo) GetActiveInviteBySession(ctx context.Context, sessionID string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE session_id = ? AND status = ?`,
		sessionID, string(domain.InvitePending),
	)
	return scanInvite(row)
}

func (r *invitesRepo) UpdateInviteSitter(ctx context.Context, id, sitterEmail, sitterName string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invites SET sitter_email = ?, sitter_name = ?, updated_at = ?
		WHERE id = ?`,
		sitterEmail, sitterName, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// MarkInviteAccepted is the single conditional update that guarantees
// at-most-one acceptance: the WHERE clause only matches a pending row, so of
// two racing accepts exactly one sees RowsAffected == 1.
func (r *invitesRepo) MarkInviteAccepted(ctx context.Context, id, acceptedBy string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invites SET status = ?, accepted_by = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		string(domain.InviteAccepted), acceptedBy, time.Now().UTC(),
		id, string(domain.InvitePending),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *invitesRepo) MarkInviteStatus(ctx context.Context, id string, status domain.InviteStatus) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invites SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		string(status), time.Now().UTC(), id, string(domain.InvitePending),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *invitesRepo) DeleteInvite(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM invites WHERE id = ?`, id)
	return err
}

func (r *invitesRepo) ListExpiredPendingInvites(ctx context.Context, now time.Time) ([]domain.Invite, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE status = ? AND expires_at < ?`,
		string(domain.InvitePending), now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInvite(row scanner) (domain.Invite, error) {
	var inv domain.Invite
	var status string
	var acceptedBy sql.NullString

	err := row.Scan(
		&inv.ID, &inv.Code, &inv.NestID, &inv.NestName, &inv.SessionID,
		&inv.SitterEmail, &inv.SitterName,
		&status, &inv.CreatedBy, &acceptedBy,
		&inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}

	inv.Status = domain.InviteStatus(status)
	inv.AcceptedBy = mapNullString(acceptedBy)
	return inv, nil
}

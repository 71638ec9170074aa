package http

import (
	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/pkg/invitecode"
	"github.com/nestnote/nestnote/pkg/nestsdk"
)

// Conversions from domain types to the SDK wire shapes. Invite codes leave
// the service in display form only.

func toSDKSitter(s domain.SitterItem) nestsdk.Sitter {
	return nestsdk.Sitter{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSDKSitters(items []domain.SitterItem) []nestsdk.Sitter {
	out := make([]nestsdk.Sitter, 0, len(items))
	for _, s := range items {
		out = append(out, toSDKSitter(s))
	}
	return out
}

func toSDKAssignedSitter(as *domain.AssignedSitter) *nestsdk.AssignedSitter {
	if as == nil {
		return nil
	}
	return &nestsdk.AssignedSitter{
		ID:           as.ID,
		Name:         as.Name,
		Email:        as.Email,
		UserID:       as.UserID,
		InviteStatus: string(as.InviteStatus),
		InviteID:     as.InviteID,
	}
}

func toSDKSession(s domain.SessionItem) nestsdk.Session {
	return nestsdk.Session{
		ID:             s.ID,
		NestID:         s.NestID,
		NestName:       s.NestName,
		Title:          s.Title,
		StartsAt:       s.StartsAt,
		EndsAt:         s.EndsAt,
		AssignedSitter: toSDKAssignedSitter(s.AssignedSitter),
		CreatedAt:      s.CreatedAt,
	}
}

func toSDKSessions(items []domain.SessionItem) []nestsdk.Session {
	out := make([]nestsdk.Session, 0, len(items))
	for _, s := range items {
		out = append(out, toSDKSession(s))
	}
	return out
}

func toSDKInvite(i domain.Invite) nestsdk.Invite {
	return nestsdk.Invite{
		ID:          i.ID,
		Code:        invitecode.Format(i.Code),
		NestID:      i.NestID,
		NestName:    i.NestName,
		SessionID:   i.SessionID,
		SitterEmail: i.SitterEmail,
		SitterName:  i.SitterName,
		Status:      string(i.Status),
		ExpiresAt:   i.ExpiresAt,
		CreatedAt:   i.CreatedAt,
	}
}

func toSDKSitterSession(ss domain.SitterSession) nestsdk.SitterSession {
	return nestsdk.SitterSession{
		ID:         ss.ID,
		SessionID:  ss.SessionID,
		InviteID:   ss.InviteID,
		NestID:     ss.NestID,
		NestName:   ss.NestName,
		AcceptedAt: ss.AcceptedAt,
	}
}

func toSDKSitterSessions(items []domain.SitterSession) []nestsdk.SitterSession {
	out := make([]nestsdk.SitterSession, 0, len(items))
	for _, ss := range items {
		out = append(out, toSDKSitterSession(ss))
	}
	return out
}

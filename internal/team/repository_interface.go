package team

import "context"

type Repository interface {
	Create(ctx context.Context, name string, teamLeadID int) (*Team, error)
	GetByName(ctx context.Context, name string) (*Team, error)
	ListMembers(ctx context.Context, teamID int) ([]Member, error)
	IsMember(ctx context.Context, teamID, userID int) (bool, error)
	AddMember(ctx context.Context, teamID, userID int) error
	RemoveMember(ctx context.Context, teamID, userID int) error
}

package team

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound  = errors.New("team not found")
	ErrAlreadyMember = errors.New("user already in team")
	ErrNotMember     = errors.New("user is not part of this team")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string, teamLeadID int) (*Team, error) {
	query := `
		INSERT INTO teams (name, team_lead_id)
		VALUES ($1, $2)
		RETURNING id, name, team_lead_id, created_at
	`

	var team Team
	err := r.db.GetContext(ctx, &team, query, name, teamLeadID)
	if err != nil {
		return nil, err
	}

	return &team, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Team, error) {
	query := `
		SELECT id, name, team_lead_id, created_at
		FROM teams
		WHERE name = $1
	`

	var team Team
	err := r.db.GetContext(ctx, &team, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	return &team, nil
}

func (r *repository) ListMembers(ctx context.Context, teamID int) ([]Member, error) {
	query := `
		SELECT tm.id, tm.team_id, tm.user_id, u.username, u.date_of_birth
		FROM team_members tm
		JOIN users u ON tm.user_id = u.id
		WHERE tm.team_id = $1
		ORDER BY tm.id
	`

	var members []Member
	err := r.db.SelectContext(ctx, &members, query, teamID)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) IsMember(ctx context.Context, teamID, userID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM team_members
			WHERE team_id = $1 AND user_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, teamID, userID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) AddMember(ctx context.Context, teamID, userID int) error {
	query := `INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyMember
		}
		return err
	}

	return nil
}

func (r *repository) RemoveMember(ctx context.Context, teamID, userID int) error {
	query := `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotMember
	}

	return nil
}

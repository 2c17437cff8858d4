package team

import "time"

type Team struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	TeamLeadID int       `db:"team_lead_id" json:"team_lead_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Member is a team membership row joined with the member's user record.
type Member struct {
	ID          int        `db:"id" json:"id"`
	TeamID      int        `db:"team_id" json:"team_id"`
	UserID      int        `db:"user_id" json:"user_id"`
	Username    string     `db:"username" json:"username"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
}

// ConsumesSeat reports whether the member takes up a conference-room seat:
// members of unknown age or aged 10 and above do, younger children do not.
func (m Member) ConsumesSeat(at time.Time) bool {
	if m.DateOfBirth == nil {
		return true
	}

	dob := *m.DateOfBirth
	years := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		years--
	}
	return years >= 10
}

// SeatsNeeded counts the seat-consuming members of a team at the given time.
func SeatsNeeded(members []Member, at time.Time) int {
	seats := 0
	for _, m := range members {
		if m.ConsumesSeat(at) {
			seats++
		}
	}
	return seats
}

type CreateTeamRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	TeamLeadID int    `json:"team_lead_id" binding:"required"`
}

type MembershipRequest struct {
	TeamID int `json:"team_id" binding:"required"`
	UserID int `json:"user_id" binding:"required"`
}

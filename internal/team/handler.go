package team

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// CreateTeam godoc
// @Summary      Create team (admin)
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTeamRequest  true  "Team data"
// @Success      201      {object}  Team
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/teams [post]
func (h *Handler) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.repo.Create(c.Request.Context(), req.Name, req.TeamLeadID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	c.JSON(http.StatusCreated, team)
}

// AddMember godoc
// @Summary      Add user to team (admin)
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      MembershipRequest  true  "Membership"
// @Success      201      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /admin/teams/members [post]
func (h *Handler) AddMember(c *gin.Context) {
	var req MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.AddMember(c.Request.Context(), req.TeamID, req.UserID); err != nil {
		if errors.Is(err, ErrAlreadyMember) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already in team"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User added to team"})
}

// RemoveMember godoc
// @Summary      Remove user from team (admin)
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      MembershipRequest  true  "Membership"
// @Success      200      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/teams/members [delete]
func (h *Handler) RemoveMember(c *gin.Context) {
	var req MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.RemoveMember(c.Request.Context(), req.TeamID, req.UserID); err != nil {
		if errors.Is(err, ErrNotMember) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User is not part of this team"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed from team"})
}

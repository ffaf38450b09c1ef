// Package handlers exposes the analysis engines over HTTP.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/analysis"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

// RosterHandler serves lineup optimization and team listing.
type RosterHandler struct {
	svc *analysis.Service
	log *logrus.Entry
}

func NewRosterHandler(svc *analysis.Service) *RosterHandler {
	return &RosterHandler{svc: svc, log: logger.WithService("roster-handler")}
}

type optimizeRequest struct {
	TeamID int `json:"team_id" binding:"required"`
}

// Optimize handles POST /api/v1/roster/optimize.
func (h *RosterHandler) Optimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.svc.OptimizeTeam(c.Request.Context(), req.TeamID)
	if err != nil {
		h.log.WithError(err).WithField("team_id", req.TeamID).Error("Lineup optimization failed")
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error: "Failed to optimize lineup",
			Code:  "OPTIMIZE_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse{Data: result})
}

// Teams handles GET /api/v1/teams.
func (h *RosterHandler) Teams(c *gin.Context) {
	teams, err := h.svc.Teams(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Team listing failed")
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error: "Failed to load league teams",
			Code:  "LEAGUE_UNAVAILABLE",
		})
		return
	}
	c.JSON(http.StatusOK, types.SuccessResponse{Data: teams})
}

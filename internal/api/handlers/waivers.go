package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/analysis"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

// WaiverHandler serves free-agent pickup recommendations.
type WaiverHandler struct {
	svc *analysis.Service
	log *logrus.Entry
}

func NewWaiverHandler(svc *analysis.Service) *WaiverHandler {
	return &WaiverHandler{svc: svc, log: logger.WithService("waiver-handler")}
}

type waiverRequest struct {
	TeamID int `json:"team_id" binding:"required"`
}

// Analyze handles POST /api/v1/waivers/analyze.
func (h *WaiverHandler) Analyze(c *gin.Context) {
	var req waiverRequest
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

	result, err := h.svc.AnalyzeWaivers(c.Request.Context(), req.TeamID)
	if err != nil {
		h.log.WithError(err).WithField("team_id", req.TeamID).Error("Waiver analysis failed")
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error: "Failed to analyze waiver options",
			Code:  "WAIVER_ANALYSIS_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse{Data: result})
}

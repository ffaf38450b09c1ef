package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/analysis"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

// TradeHandler serves two-team trade evaluations.
type TradeHandler struct {
	svc *analysis.Service
	log *logrus.Entry
}

func NewTradeHandler(svc *analysis.Service) *TradeHandler {
	return &TradeHandler{svc: svc, log: logger.WithService("trade-handler")}
}

type tradeRequest struct {
	Team1ID    int      `json:"team1_id" binding:"required"`
	Team2ID    int      `json:"team2_id" binding:"required"`
	Team1Sends []string `json:"team1_sends" binding:"required"`
	Team2Sends []string `json:"team2_sends" binding:"required"`
}

// Evaluate handles POST /api/v1/trades/evaluate.
func (h *TradeHandler) Evaluate(c *gin.Context) {
	var req tradeRequest
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
	if req.Team1ID == req.Team2ID {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "A trade needs two different teams",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	result, err := h.svc.EvaluateTrade(c.Request.Context(), req.Team1ID, req.Team2ID, req.Team1Sends, req.Team2Sends)
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"team1_id": req.Team1ID,
			"team2_id": req.Team2ID,
		}).Error("Trade evaluation failed")
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error: "Failed to evaluate trade",
			Code:  "TRADE_EVALUATION_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse{Data: result})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/analysis"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

// StreamingHandler serves probable-starter matchup rankings.
type StreamingHandler struct {
	svc *analysis.Service
	log *logrus.Entry
	now func() time.Time
}

func NewStreamingHandler(svc *analysis.Service) *StreamingHandler {
	return &StreamingHandler{
		svc: svc,
		log: logger.WithService("streaming-handler"),
		now: time.Now,
	}
}

// Matchups handles GET /api/v1/streaming. An explicit ?date=YYYY-MM-DD
// limits the scan to one day; the default covers the current week, Monday
// through Sunday.
func (h *StreamingHandler) Matchups(c *gin.Context) {
	var dates []string
	if date := c.Query("date"); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error: "Date must be formatted YYYY-MM-DD",
				Code:  "INVALID_REQUEST",
			})
			return
		}
		dates = []string{date}
	} else {
		dates = currentWeek(h.now())
	}

	matchups, err := h.svc.StreamingMatchups(c.Request.Context(), dates)
	if err != nil {
		h.log.WithError(err).Error("Streaming analysis failed")
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error: "Failed to rank streaming matchups",
			Code:  "STREAMING_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse{Data: matchups})
}

// currentWeek returns the dates from Monday through Sunday of the week
// containing now.
func currentWeek(now time.Time) []string {
	weekday := int(now.Weekday())
	// time.Sunday is 0; shift so Monday starts the week.
	if weekday == 0 {
		weekday = 7
	}
	monday := now.AddDate(0, 0, -(weekday - 1))

	dates := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, monday.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return dates
}

package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/analysis"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/draft"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

// DraftHandler manages a single live draft board per service instance.
type DraftHandler struct {
	svc   *analysis.Service
	slots types.RosterSlots
	log   *logrus.Entry

	mu    sync.Mutex
	board *draft.Board
}

func NewDraftHandler(svc *analysis.Service, slots types.RosterSlots) *DraftHandler {
	return &DraftHandler{svc: svc, slots: slots, log: logger.WithService("draft-handler")}
}

type startDraftRequest struct {
	Teams []string `json:"teams" binding:"required,min=1"`
}

// Start handles POST /api/v1/draft/start, seeding the board from the
// current projection pool. Starting again replaces any draft in progress.
func (h *DraftHandler) Start(c *gin.Context) {
	var req startDraftRequest
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

	pool, err := h.svc.ProjectionPool(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Draft pool load failed")
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error: "Failed to load player pool",
			Code:  "POOL_UNAVAILABLE",
		})
		return
	}

	board, err := draft.NewBoard(req.Teams, pool, h.slots)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_REQUEST",
		})
		return
	}

	h.mu.Lock()
	h.board = board
	h.mu.Unlock()

	h.log.WithField("teams", len(req.Teams)).Info("Draft started")
	c.JSON(http.StatusOK, types.SuccessResponse{Message: "Draft started"})
}

type pickRequest struct {
	Player string `json:"player" binding:"required"`
}

// Pick handles POST /api/v1/draft/pick.
func (h *DraftHandler) Pick(c *gin.Context) {
	var req pickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.board == nil {
		c.JSON(http.StatusConflict, types.ErrorResponse{
			Error: "No draft in progress",
			Code:  "NO_DRAFT",
		})
		return
	}

	pick, err := h.board.RecordPick(req.Player)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_PICK",
		})
		return
	}
	c.JSON(http.StatusOK, types.SuccessResponse{Data: pick})
}

// Undo handles POST /api/v1/draft/undo.
func (h *DraftHandler) Undo(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.board == nil {
		c.JSON(http.StatusConflict, types.ErrorResponse{
			Error: "No draft in progress",
			Code:  "NO_DRAFT",
		})
		return
	}

	pick, ok := h.board.UndoLast()
	if !ok {
		c.JSON(http.StatusConflict, types.ErrorResponse{
			Error: "No picks to undo",
			Code:  "NOTHING_TO_UNDO",
		})
		return
	}
	c.JSON(http.StatusOK, types.SuccessResponse{Data: pick})
}

// Board handles GET /api/v1/draft/board.
func (h *DraftHandler) Board(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.board == nil {
		c.JSON(http.StatusConflict, types.ErrorResponse{
			Error: "No draft in progress",
			Code:  "NO_DRAFT",
		})
		return
	}

	team, round, pickInRound := h.board.OnClock()
	c.JSON(http.StatusOK, types.SuccessResponse{Data: gin.H{
		"on_clock":      team,
		"round":         round,
		"pick_in_round": pickInRound,
		"picks":         h.board.Picks(),
	}})
}

// Available handles GET /api/v1/draft/available.
func (h *DraftHandler) Available(c *gin.Context) {
	limit := 25
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error: "Limit must be a positive integer",
				Code:  "INVALID_REQUEST",
			})
			return
		}
		limit = parsed
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.board == nil {
		c.JSON(http.StatusConflict, types.ErrorResponse{
			Error: "No draft in progress",
			Code:  "NO_DRAFT",
		})
		return
	}
	c.JSON(http.StatusOK, types.SuccessResponse{
		Data: h.board.BestAvailable(c.Query("position"), limit),
	})
}

// Leaderboard handles GET /api/v1/draft/leaderboard.
func (h *DraftHandler) Leaderboard(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.board == nil {
		c.JSON(http.StatusConflict, types.ErrorResponse{
			Error: "No draft in progress",
			Code:  "NO_DRAFT",
		})
		return
	}
	c.JSON(http.StatusOK, types.SuccessResponse{Data: h.board.Leaderboard()})
}

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flechazo/internal/repository"
	"flechazo/internal/service"
)

// SimulationHandler mantiene dependencias para endpoints de simulaciones.
type SimulationHandler struct {
	logger     *zap.Logger
	avatarServ *service.AvatarService
	sims       repository.SimulationRepository
}

func NewSimulationHandler(logger *zap.Logger, avatarServ *service.AvatarService, sims repository.SimulationRepository) *SimulationHandler {
	return &SimulationHandler{
		logger:     logger,
		avatarServ: avatarServ,
		sims:       sims,
	}
}

// Run maneja POST /simulations/run.
func (h *SimulationHandler) Run(c *gin.Context) {
	var req struct {
		MatchID string `json:"match_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid run simulation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	record, err := h.avatarServ.RunSimulation(c.Request.Context(), req.MatchID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSimulationDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "simulations are disabled"})
		case errors.Is(err, service.ErrSimulationRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many simulations"})
		case errors.Is(err, service.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		default:
			h.logger.Error("run simulation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not run simulation"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"simulation": record})
}

// History maneja GET /simulations?with=<user_id>&match_id=<id>.
func (h *SimulationHandler) History(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	otherID := strings.TrimSpace(c.Query("with"))
	if otherID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'with' parameter"})
		return
	}

	var matchID *string
	if m := strings.TrimSpace(c.Query("match_id")); m != "" {
		matchID = &m
	}

	records, err := h.sims.ListByPair(c.Request.Context(), claims.UserID, otherID, matchID)
	if err != nil {
		h.logger.Error("list simulations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list simulations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"simulations": records})
}

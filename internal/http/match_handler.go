package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flechazo/internal/service"
)

// MatchHandler mantiene dependencias para endpoints de matches.
type MatchHandler struct {
	logger    *zap.Logger
	matchServ *service.MatchService
}

func NewMatchHandler(logger *zap.Logger, matchServ *service.MatchService) *MatchHandler {
	return &MatchHandler{logger: logger, matchServ: matchServ}
}

// CreateMatch maneja POST /matches.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create match request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	match, err := h.matchServ.CreateMatch(c.Request.Context(), claims.UserID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfMatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot match with yourself"})
		case errors.Is(err, service.ErrMatchExists):
			c.JSON(http.StatusConflict, gin.H{"error": "match already exists"})
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		default:
			h.logger.Error("create match failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create match"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"match": match})
}

// ListMatches maneja GET /matches.
func (h *MatchHandler) ListMatches(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	matches, err := h.matchServ.ListForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list matches failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// DiscoverCandidates maneja GET /matches/candidates.
func (h *MatchHandler) DiscoverCandidates(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	candidates, err := h.matchServ.DiscoverCandidates(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("discover candidates failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not discover candidates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flechazo/internal/service"
)

// CompatibilityHandler expone el motor de compatibilidad: reporte completo,
// dashboard y tendencias. El primer usuario siempre es el autenticado.
type CompatibilityHandler struct {
	logger     *zap.Logger
	compatServ *service.CompatibilityService
}

func NewCompatibilityHandler(logger *zap.Logger, compatServ *service.CompatibilityService) *CompatibilityHandler {
	return &CompatibilityHandler{logger: logger, compatServ: compatServ}
}

// GetReport maneja GET /compatibility/report?with=<user_id>&match_id=&include_trends=.
func (h *CompatibilityHandler) GetReport(c *gin.Context) {
	claims, otherID, matchID, ok := h.pairParams(c)
	if !ok {
		return
	}

	includeTrends := c.Query("include_trends") == "true"

	report, err := h.compatServ.GenerateReport(c.Request.Context(), claims.UserID, otherID, matchID, includeTrends)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("generate report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetDashboard maneja GET /compatibility/dashboard?with=<user_id>&match_id=.
func (h *CompatibilityHandler) GetDashboard(c *gin.Context) {
	claims, otherID, matchID, ok := h.pairParams(c)
	if !ok {
		return
	}

	dashboard, err := h.compatServ.GetDashboardData(c.Request.Context(), claims.UserID, otherID, matchID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("dashboard failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}

// GetTrends maneja GET /compatibility/trends?with=<user_id>&window_days=.
func (h *CompatibilityHandler) GetTrends(c *gin.Context) {
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

	windowDays, err := strconv.Atoi(c.DefaultQuery("window_days", "30"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window_days"})
		return
	}

	trends, err := h.compatServ.GetTrends(c.Request.Context(), claims.UserID, otherID, windowDays)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "window_days must be between 7 and 365"})
			return
		}
		h.logger.Error("trends failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute trends"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": trends})
}

func (h *CompatibilityHandler) pairParams(c *gin.Context) (service.Claims, string, *string, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return service.Claims{}, "", nil, false
	}

	otherID := strings.TrimSpace(c.Query("with"))
	if otherID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'with' parameter"})
		return service.Claims{}, "", nil, false
	}

	var matchID *string
	if m := strings.TrimSpace(c.Query("match_id")); m != "" {
		matchID = &m
	}

	return claims, otherID, matchID, true
}

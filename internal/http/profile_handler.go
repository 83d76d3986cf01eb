package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"flechazo/internal/domain"
	"flechazo/internal/repository"
)

// ProfileHandler mantiene dependencias para endpoints de perfiles.
type ProfileHandler struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
	traits   repository.TraitRepository
}

func NewProfileHandler(logger *zap.Logger, profiles repository.ProfileRepository, traits repository.TraitRepository) *ProfileHandler {
	return &ProfileHandler{
		logger:   logger,
		profiles: profiles,
		traits:   traits,
	}
}

// CreateProfile maneja POST /profiles.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	var req struct {
		DisplayName string `json:"display_name" binding:"required"`
		Bio         string `json:"bio"`
		Big5        struct {
			Openness          int `json:"openness" binding:"min=0,max=100"`
			Conscientiousness int `json:"conscientiousness" binding:"min=0,max=100"`
			Extraversion      int `json:"extraversion" binding:"min=0,max=100"`
			Agreeableness     int `json:"agreeableness" binding:"min=0,max=100"`
			Neuroticism       int `json:"neuroticism" binding:"min=0,max=100"`
		} `json:"big5"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile := domain.Profile{
		ID:          uuid.NewString(),
		UserID:      claims.UserID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Big5: domain.Big5Profile{
			Openness:          req.Big5.Openness,
			Conscientiousness: req.Big5.Conscientiousness,
			Extraversion:      req.Big5.Extraversion,
			Agreeableness:     req.Big5.Agreeableness,
			Neuroticism:       req.Big5.Neuroticism,
		},
		Completeness: profileCompleteness(req.Bio, req.Big5.Openness, req.Big5.Conscientiousness, req.Big5.Extraversion, req.Big5.Agreeableness, req.Big5.Neuroticism),
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.profiles.Create(c.Request.Context(), profile); err != nil {
		h.logger.Error("create profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create profile"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// GetOwnProfile maneja GET /profiles/me.
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	profile, err := h.profiles.GetByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get profile"})
		return
	}

	traits, err := h.traits.FindByProfileID(c.Request.Context(), profile.ID)
	if err != nil {
		h.logger.Warn("get traits failed", zap.Error(err), zap.String("profile_id", profile.ID))
		traits = nil
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile, "traits": traits})
}

// UpsertTraits maneja PUT /profiles/traits.
func (h *ProfileHandler) UpsertTraits(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	var req struct {
		Traits []struct {
			Category   string   `json:"category" binding:"required"`
			Trait      string   `json:"trait" binding:"required"`
			Value      int      `json:"value" binding:"min=0,max=100"`
			Confidence *float64 `json:"confidence"`
		} `json:"traits" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid upsert traits request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.profiles.GetByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get profile"})
		return
	}

	now := time.Now().UTC()
	for _, t := range req.Traits {
		trait := domain.Trait{
			ID:         uuid.NewString(),
			ProfileID:  profile.ID,
			Category:   strings.ToUpper(strings.TrimSpace(t.Category)),
			Trait:      strings.ToLower(strings.TrimSpace(t.Trait)),
			Value:      t.Value,
			Confidence: t.Confidence,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := h.traits.Upsert(c.Request.Context(), trait); err != nil {
			h.logger.Error("trait upsert failed", zap.Error(err), zap.String("trait", trait.Trait))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save traits"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "traits_saved", "count": len(req.Traits)})
}

// profileCompleteness: fraccion de campos opcionales rellenados.
func profileCompleteness(bio string, big5 ...int) float64 {
	total := 1 + len(big5)
	filled := 0
	if strings.TrimSpace(bio) != "" {
		filled++
	}
	for _, v := range big5 {
		if v > 0 {
			filled++
		}
	}
	return float64(filled) / float64(total)
}

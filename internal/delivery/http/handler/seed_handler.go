package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/venue-finder/internal/domain/repository"
	"github.com/venue-finder/internal/pkg/errors"
	"github.com/venue-finder/internal/pkg/utils"
	"github.com/venue-finder/internal/pkg/validator"
	"github.com/venue-finder/internal/usecase"
	"github.com/venue-finder/internal/usecase/dto"
	"go.uber.org/zap"
)

// SourceFactory строит источник случайных точек заданного размера
type SourceFactory func(count int) repository.VenueSource

// SeedHandler запускает фоновую массовую загрузку
type SeedHandler struct {
	baseCtx      context.Context
	loader       *usecase.BulkLoader
	newSource    SourceFactory
	defaultCount int
	logger       *zap.Logger
}

// NewSeedHandler создает новый SeedHandler. baseCtx ограничивает время жизни фоновых загрузок.
func NewSeedHandler(
	baseCtx context.Context,
	loader *usecase.BulkLoader,
	newSource SourceFactory,
	defaultCount int,
	logger *zap.Logger,
) *SeedHandler {
	return &SeedHandler{
		baseCtx:      baseCtx,
		loader:       loader,
		newSource:    newSource,
		defaultCount: defaultCount,
		logger:       logger,
	}
}

// Seed godoc
// @Summary Start a bulk load
// @Description Запускает фоновую загрузку случайных точек. replace=true очищает индекс перед загрузкой.
// @Tags Venues
// @Accept json
// @Produce json
// @Param request body dto.SeedRequest false "Seed parameters"
// @Success 202 {object} utils.SuccessResponse{data=dto.SeedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/venues/seed [post]
func (h *SeedHandler) Seed(c *fiber.Ctx) error {
	var req dto.SeedRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"body": "invalid JSON",
			}))
		}
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}
	if req.Count == 0 {
		req.Count = h.defaultCount
	}

	if err := h.loader.Start(h.baseCtx, h.newSource(req.Count), req.Replace); err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Bulk load started",
		zap.Int("count", req.Count),
		zap.Bool("replace", req.Replace))

	return utils.SendStatus(c, fiber.StatusAccepted, dto.SeedResponse{
		Status:  "started",
		Count:   req.Count,
		Replace: req.Replace,
	})
}

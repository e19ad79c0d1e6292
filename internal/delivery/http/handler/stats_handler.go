package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/venue-finder/internal/pkg/utils"
	"github.com/venue-finder/internal/usecase"
	"go.uber.org/zap"
)

// StatsHandler обрабатывает запросы для статистики
type StatsHandler struct {
	registry *usecase.VenueRegistry
	loader   *usecase.BulkLoader
	logger   *zap.Logger
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(registry *usecase.VenueRegistry, loader *usecase.BulkLoader, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		registry: registry,
		loader:   loader,
		logger:   logger,
	}
}

// GetStatistics godoc
// @Summary Get index statistics
// @Description Возвращает размер индекса, число ячеек и состояние фоновой загрузки
// @Tags Statistics
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.IndexStatsResponse}
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	h.logger.Debug("Handling get statistics request")

	stats := h.registry.Stats()
	stats.Seeding = h.loader.Running()

	return utils.SendSuccess(c, stats, nil)
}

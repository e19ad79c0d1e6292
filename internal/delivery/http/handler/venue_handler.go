package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/venue-finder/internal/pkg/errors"
	"github.com/venue-finder/internal/pkg/utils"
	"github.com/venue-finder/internal/pkg/validator"
	"github.com/venue-finder/internal/usecase"
	"github.com/venue-finder/internal/usecase/dto"
	"go.uber.org/zap"
)

// VenueHandler - обработчик запросов к реестру точек
type VenueHandler struct {
	registry      *usecase.VenueRegistry
	defaultRadius float64
	logger        *zap.Logger
}

// NewVenueHandler создает новый VenueHandler; defaultRadius - радиус шлюза в метрах
func NewVenueHandler(registry *usecase.VenueRegistry, defaultRadius float64, logger *zap.Logger) *VenueHandler {
	return &VenueHandler{
		registry:      registry,
		defaultRadius: defaultRadius,
		logger:        logger,
	}
}

// NearByRoot godoc
// @Summary Venues around a point
// @Description Возвращает имена точек в радиусе шлюза (GATEWAY_RADIUS_METERS) от заданной точки
// @Tags Venues
// @Produce json
// @Param longitude query number true "Longitude"
// @Param latitude query number true "Latitude"
// @Success 200 {array} string
// @Failure 400 {object} utils.ErrorResponse
// @Router / [get]
func (h *VenueHandler) NearByRoot(c *fiber.Ctx) error {
	lon, err := queryFloat(c, "longitude")
	if err != nil {
		return utils.SendError(c, err)
	}
	lat, err := queryFloat(c, "latitude")
	if err != nil {
		return utils.SendError(c, err)
	}

	names, err := h.registry.NearBy(lat, lon, h.defaultRadius)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(names)
}

// NearBy godoc
// @Summary Venues within a radius
// @Description Возвращает имена точек не дальше radius_m метров, со статистикой просмотра индекса
// @Tags Venues
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius_m query number false "Radius in meters (default: gateway radius)"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/venues/nearby [get]
func (h *VenueHandler) NearBy(c *fiber.Ctx) error {
	var req dto.NearbyRequest
	var err error

	if req.Lat, err = queryFloat(c, "lat"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Lon, err = queryFloat(c, "lon"); err != nil {
		return utils.SendError(c, err)
	}
	if req.RadiusM, err = queryFloatDefault(c, "radius_m", h.defaultRadius); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	res, err := h.registry.Search(req.Lat, req.Lon, req.RadiusM)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NearbyResponse{
		Names: res.Names,
		Total: len(res.Names),
	}, &utils.Meta{
		Total:    len(res.Names),
		RadiusM:  req.RadiusM,
		Scanned:  res.Candidates,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// Add godoc
// @Summary Register a venue
// @Description Добавляет именованную точку в индекс. Имена не уникальны.
// @Tags Venues
// @Accept json
// @Produce json
// @Param request body dto.AddVenueRequest true "Venue"
// @Success 201 {object} utils.SuccessResponse{data=dto.VenueResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/venues [post]
func (h *VenueHandler) Add(c *fiber.Ctx) error {
	var req dto.AddVenueRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "invalid JSON",
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.registry.Add(req.Name, *req.Lat, *req.Lon); err != nil {
		h.logger.Debug("Venue rejected", zap.String("name", req.Name), zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendStatus(c, fiber.StatusCreated, dto.VenueResponse{
		Name: req.Name,
		Lat:  *req.Lat,
		Lon:  *req.Lon,
	})
}

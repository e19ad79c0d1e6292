package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/venue-finder/internal/pkg/errors"
)

// queryFloat читает обязательный числовой query-параметр
func queryFloat(c *fiber.Ctx, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{key: "required"})
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{key: "number"})
	}
	return v, nil
}

// queryFloatDefault - то же, но с значением по умолчанию для отсутствующего параметра
func queryFloatDefault(c *fiber.Ctx, key string, def float64) (float64, error) {
	if c.Query(key) == "" {
		return def, nil
	}
	return queryFloat(c, key)
}

package loadgen

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HTTPDoer обращается к GET /?longitude=&latitude= через fiber.Agent
type HTTPDoer struct {
	BaseURL string
	Timeout time.Duration
}

// Do выполняет один запрос. ctx проверяется только до отправки.
func (d *HTTPDoer) Do(ctx context.Context, lat, lon float64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/?longitude=%s&latitude=%s",
		strings.TrimRight(d.BaseURL, "/"),
		strconv.FormatFloat(lon, 'f', 6, 64),
		strconv.FormatFloat(lat, 'f', 6, 64),
	)

	agent := fiber.Get(url)
	if d.Timeout > 0 {
		agent.Timeout(d.Timeout)
	}

	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return code, errors.Join(errs...)
	}
	return code, nil
}

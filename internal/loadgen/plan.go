// Package loadgen drives the query gateway with constant-arrival-rate stages
// and summarizes the observed latencies.
package loadgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Stage - отрезок нагрузки: Requests запросов, равномерно распределённых по Duration
type Stage struct {
	Duration time.Duration
	Requests int
}

// Interval возвращает паузу между запусками запросов
func (s Stage) Interval() time.Duration {
	if s.Requests <= 0 {
		return s.Duration
	}
	return s.Duration / time.Duration(s.Requests)
}

// Rate возвращает частоту в запросах в секунду
func (s Stage) Rate() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Requests) / s.Duration.Seconds()
}

func (s Stage) String() string {
	return fmt.Sprintf("%d req / %s", s.Requests, s.Duration)
}

// DefaultPlan: разогрев одним запросом, 100 rps, пик 1000 rps, затухание одним запросом
var DefaultPlan = []Stage{
	{Duration: 10 * time.Second, Requests: 1},
	{Duration: 10 * time.Second, Requests: 1000},
	{Duration: 60 * time.Second, Requests: 60000},
	{Duration: 30 * time.Second, Requests: 1},
}

// ParsePlan разбирает план вида "10s:1,10s:1000,60s:60000"
func ParsePlan(s string) ([]Stage, error) {
	var stages []Stage
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		durStr, countStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("stage %q: expected <duration>:<requests>", part)
		}
		d, err := time.ParseDuration(durStr)
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", part, err)
		}
		n, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", part, err)
		}
		if d <= 0 || n < 0 {
			return nil, fmt.Errorf("stage %q: duration must be positive and requests non-negative", part)
		}

		stages = append(stages, Stage{Duration: d, Requests: n})
	}

	if len(stages) == 0 {
		return nil, fmt.Errorf("empty plan")
	}
	return stages, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/venue-finder/internal/domain"
	"github.com/venue-finder/internal/loadgen"
	"github.com/venue-finder/internal/pkg/logger"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8085", "Gateway base URL")
	plan := flag.String("plan", "", "Stages as <duration>:<requests>,... (default: 10s:1,10s:1000,60s:60000,30s:1)")
	seed := flag.Int64("seed", 0, "Random seed for query points (0 = time based)")
	maxInFlight := flag.Int("max-in-flight", 512, "Maximum concurrent requests")
	timeout := flag.Duration("timeout", 5*time.Second, "Per-request timeout")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log, err := logger.New(*logLevel, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	stages := loadgen.DefaultPlan
	if *plan != "" {
		stages, err = loadgen.ParsePlan(*plan)
		if err != nil {
			log.Fatal("Invalid plan", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doer := &loadgen.HTTPDoer{BaseURL: *baseURL, Timeout: *timeout}
	runner := loadgen.NewRunner(doer, domain.FranceBounds, *seed, *maxInFlight, log)

	log.Info("Load test started", zap.String("url", *baseURL), zap.Int("stages", len(stages)))

	rep, err := runner.Run(ctx, stages)
	if err != nil {
		log.Warn("Load test interrupted", zap.Error(err))
	}

	codes := make([]int, 0, len(rep.Statuses))
	for code := range rep.Statuses {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	fmt.Printf("requests: %d  errors: %d  dropped: %d  elapsed: %s\n",
		rep.Requests, rep.Errors, rep.Dropped, rep.Elapsed.Round(time.Millisecond))
	for _, code := range codes {
		fmt.Printf("  status %d: %d\n", code, rep.Statuses[code])
	}
	fmt.Printf("latency p50: %s  p95: %s  p99: %s  max: %s\n",
		rep.P50, rep.P95, rep.P99, rep.Max)

	if rep.Errors > 0 {
		os.Exit(2)
	}
}

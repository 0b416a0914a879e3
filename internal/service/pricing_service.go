package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crossborder/internal/pricing"
	"crossborder/internal/websocket"
)

// PricingService is the computation API exposed to callers: classification,
// single-item price calculation, and the verification sweep. It owns no state
// beyond the snapshot cache: every operation is a pure computation over the
// catalogs, and results are never persisted here.
type PricingService interface {
	Classify(ctx context.Context, text, categoryHint string) ([]pricing.Candidate, error)
	Calculate(ctx context.Context, in pricing.Input) (pricing.Result, error)
	RunVerificationSweep(ctx context.Context, cfg pricing.SweepConfig) (pricing.SweepSummary, error)
}

type pricingService struct {
	catalogs CatalogService
	opts     pricing.Options
	hub      *websocket.Hub
	logger   *zap.Logger
}

func NewPricingService(catalogs CatalogService, opts pricing.Options, hub *websocket.Hub, logger *zap.Logger) PricingService {
	return &pricingService{catalogs: catalogs, opts: opts, hub: hub, logger: logger}
}

func (s *pricingService) Classify(ctx context.Context, text, categoryHint string) ([]pricing.Candidate, error) {
	snap, err := s.catalogs.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.NewClassifier(snap).Classify(text, categoryHint)
}

func (s *pricingService) Calculate(ctx context.Context, in pricing.Input) (pricing.Result, error) {
	snap, err := s.catalogs.LoadSnapshot(ctx)
	if err != nil {
		return pricing.Result{}, err
	}

	result, err := pricing.NewCalculator(snap, s.opts).Calculate(in)
	if err != nil {
		return pricing.Result{}, err
	}

	if result.DutyRateFallback {
		s.logger.Warn("priced with fallback duty rate, item needs manual classification",
			zap.String("description", in.Description),
			zap.String("suggested_price", result.SuggestedPrice.String()))
	}
	if result.IsLoss {
		s.logger.Warn("calculation produced a loss-making price",
			zap.String("description", in.Description),
			zap.String("profit", result.Profit.String()))
	}
	return result, nil
}

// RunVerificationSweep prices the weight x cost grid and broadcasts the
// outcome to connected dashboard clients.
func (s *pricingService) RunVerificationSweep(ctx context.Context, cfg pricing.SweepConfig) (pricing.SweepSummary, error) {
	snap, err := s.catalogs.LoadSnapshot(ctx)
	if err != nil {
		return pricing.SweepSummary{}, err
	}

	s.publish("sweep_started", map[string]interface{}{
		"cells": sweepCellCount(cfg),
	})

	started := time.Now()
	summary := pricing.RunSweep(pricing.NewCalculator(snap, s.opts), cfg)

	s.logger.Info("verification sweep finished",
		zap.Int("total", summary.Total),
		zap.Int("loss_count", summary.LossCount),
		zap.Int("low_margin_count", summary.LowMarginCount),
		zap.String("loss_rate", summary.LossRate.String()),
		zap.String("target_rate", summary.TargetRate.String()),
		zap.Duration("elapsed", time.Since(started)))

	s.publish("sweep_completed", summary)
	return summary, nil
}

func (s *pricingService) publish(event string, payload interface{}) {
	if s.hub == nil {
		return
	}
	message, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		return
	}
	s.hub.Broadcast <- message
}

func sweepCellCount(cfg pricing.SweepConfig) int {
	weights, costs := cfg.Weights, cfg.Costs
	if len(weights) == 0 || len(costs) == 0 {
		weights, costs = pricing.DefaultSweepGrid()
	}
	return len(weights) * len(costs)
}

// ParseGrid converts raw float grid values from the API into decimals,
// rejecting non-positive entries.
func ParseGrid(values []float64) ([]decimal.Decimal, bool) {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		if v <= 0 {
			return nil, false
		}
		out = append(out, decimal.NewFromFloat(v))
	}
	return out, true
}

package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"crossborder/internal/model"
	"crossborder/internal/pricing"
	"crossborder/internal/repository"
)

// snapshotTTL bounds how stale a cached catalog snapshot may get. Reference
// data changes rarely; a sweep or request batch always sees one consistent
// snapshot regardless.
const snapshotTTL = 5 * time.Minute

// CatalogService assembles the immutable per-batch catalog snapshot from the
// read-only repositories.
type CatalogService interface {
	LoadSnapshot(ctx context.Context) (*pricing.Snapshot, error)
	Invalidate()
}

type catalogService struct {
	tariffs  repository.TariffRepository
	policies repository.ShippingPolicyRepository
	rates    repository.ExchangeRateRepository
	margins  repository.MarginSettingRepository
	fees     repository.MarketplaceFeeRepository
	hints    repository.CategoryHintRepository
	opts     pricing.Options
	logger   *zap.Logger

	mu        sync.Mutex
	cached    *pricing.Snapshot
	expiresAt time.Time
}

func NewCatalogService(
	tariffs repository.TariffRepository,
	policies repository.ShippingPolicyRepository,
	rates repository.ExchangeRateRepository,
	margins repository.MarginSettingRepository,
	fees repository.MarketplaceFeeRepository,
	hints repository.CategoryHintRepository,
	opts pricing.Options,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		tariffs:  tariffs,
		policies: policies,
		rates:    rates,
		margins:  margins,
		fees:     fees,
		hints:    hints,
		opts:     opts,
		logger:   logger,
	}
}

// LoadSnapshot fetches all catalog tables concurrently and caches the result.
// Fetch failures degrade to documented fallbacks where the engine has one
// (exchange rate); an empty or unreadable shipping policy catalog is the one
// batch-fatal precondition.
func (s *catalogService) LoadSnapshot(ctx context.Context) (*pricing.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Now().Before(s.expiresAt) {
		return s.cached, nil
	}

	var (
		wg     sync.WaitGroup
		snap   pricing.Snapshot
		rate   *model.ExchangeRate
		hints  []model.CategoryChapterHint
		errs   = make([]error, 6)
		fetchs = []func(){
			func() { snap.TariffCodes, errs[0] = s.tariffs.ListAll(ctx) },
			func() { snap.Policies, errs[1] = s.policies.ListActive(ctx) },
			func() { rate, errs[2] = s.rates.Latest(ctx) },
			func() { snap.Margins, errs[3] = s.margins.ListActive(ctx) },
			func() { snap.Fees, errs[4] = s.fees.ListAll(ctx) },
			func() { hints, errs[5] = s.hints.ListAll(ctx) },
		}
	)
	for _, fetch := range fetchs {
		wg.Add(1)
		go func(f func()) {
			defer wg.Done()
			f()
		}(fetch)
	}
	wg.Wait()

	if errs[1] != nil {
		return nil, pricing.NewError(pricing.ErrExternalDataUnavailable,
			"failed to load shipping policies: %v", errs[1])
	}

	if errs[2] != nil || rate == nil || !rate.Safe().IsPositive() {
		// Availability over precision: price with the documented fallback rate
		// instead of failing the batch.
		snap.Rate = s.opts.FallbackRate()
		snap.Degraded = true
		s.logger.Warn("exchange rate unavailable or unusable, using fallback rate",
			zap.Error(errs[2]),
			zap.String("spot", snap.Rate.Spot.String()),
			zap.String("safe", snap.Rate.Safe().String()))
	} else {
		snap.Rate = *rate
	}

	for i, name := range map[int]string{0: "tariff codes", 3: "margin settings", 4: "marketplace fees", 5: "category hints"} {
		if errs[i] != nil {
			snap.Degraded = true
			s.logger.Warn("catalog table unavailable, continuing without it",
				zap.String("table", name), zap.Error(errs[i]))
		}
	}

	snap.CategoryChapters = chapterIndex(hints)

	if err := snap.Validate(); err != nil {
		return nil, err
	}

	s.cached = &snap
	s.expiresAt = time.Now().Add(snapshotTTL)
	return s.cached, nil
}

// Invalidate drops the cached snapshot so the next batch reloads the catalogs.
func (s *catalogService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
}

// chapterIndex keeps the top three hinted chapters per category. Hints arrive
// best-first from the repository.
func chapterIndex(hints []model.CategoryChapterHint) map[string][]string {
	index := make(map[string][]string)
	for _, h := range hints {
		if len(index[h.Category]) < 3 {
			index[h.Category] = append(index[h.Category], h.ChapterCode)
		}
	}
	return index
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crossborder/internal/model"
	"crossborder/internal/pricing"
)

// --- In-memory repository fixtures ---

type fakeTariffRepo struct {
	codes []model.TariffCode
	err   error
}

func (f *fakeTariffRepo) ListAll(ctx context.Context) ([]model.TariffCode, error) {
	return f.codes, f.err
}

func (f *fakeTariffRepo) FindByCode(ctx context.Context, code string) (*model.TariffCode, error) {
	for i := range f.codes {
		if f.codes[i].Code == code {
			return &f.codes[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeTariffRepo) List(ctx context.Context, page, limit int, search string) ([]model.TariffCode, int64, error) {
	return f.codes, int64(len(f.codes)), f.err
}

type fakePolicyRepo struct {
	policies []model.ShippingPolicy
	err      error
}

func (f *fakePolicyRepo) ListActive(ctx context.Context) ([]model.ShippingPolicy, error) {
	return f.policies, f.err
}

type fakeRateRepo struct {
	rate *model.ExchangeRate
	err  error
}

func (f *fakeRateRepo) Latest(ctx context.Context) (*model.ExchangeRate, error) {
	return f.rate, f.err
}

type fakeMarginRepo struct {
	settings []model.MarginSetting
	err      error
}

func (f *fakeMarginRepo) ListActive(ctx context.Context) ([]model.MarginSetting, error) {
	return f.settings, f.err
}

type fakeFeeRepo struct {
	fees []model.MarketplaceFee
	err  error
}

func (f *fakeFeeRepo) ListAll(ctx context.Context) ([]model.MarketplaceFee, error) {
	return f.fees, f.err
}

type fakeHintRepo struct {
	hints []model.CategoryChapterHint
	err   error
}

func (f *fakeHintRepo) ListAll(ctx context.Context) ([]model.CategoryChapterHint, error) {
	return f.hints, f.err
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixturePolicy() model.ShippingPolicy {
	return model.ShippingPolicy{
		ID:           uuid.New(),
		Name:         "unpaid-light",
		PricingBasis: model.BasisDutyUnpaid,
		WeightMinKg:  dec("0"),
		WeightMaxKg:  dec("30"),
		SortOrder:    1,
		Active:       true,
		Zones: []model.ZoneRate{{
			ID:                    uuid.New(),
			ZoneCode:              "US",
			DisplayShippingCost:   dec("15"),
			ActualShippingCost:    dec("12"),
			HandlingFeeDutyUnpaid: dec("2"),
		}},
	}
}

func newTestCatalogService(rates *fakeRateRepo, policies *fakePolicyRepo) CatalogService {
	return NewCatalogService(
		&fakeTariffRepo{},
		policies,
		rates,
		&fakeMarginRepo{settings: []model.MarginSetting{{
			Tier:              "standard",
			DefaultMargin:     dec("0.25"),
			MinMargin:         dec("0.15"),
			MaxMargin:         dec("0.40"),
			MinAbsoluteProfit: dec("5"),
			Active:            true,
		}}},
		&fakeFeeRepo{fees: []model.MarketplaceFee{{
			Category:          model.FeeCategoryDefault,
			FeeRate:           dec("0.13"),
			FixedInsertionFee: dec("0.35"),
		}}},
		&fakeHintRepo{hints: []model.CategoryChapterHint{
			{Category: "Pokemon", ChapterCode: "95", Confidence: dec("0.9")},
			{Category: "Pokemon", ChapterCode: "49", Confidence: dec("0.5")},
			{Category: "Pokemon", ChapterCode: "97", Confidence: dec("0.3")},
			{Category: "Pokemon", ChapterCode: "48", Confidence: dec("0.1")},
		}},
		pricing.DefaultOptions(),
		zap.NewNop(),
	)
}

func TestLoadSnapshot(t *testing.T) {
	rate := &model.ExchangeRate{Spot: dec("150"), BufferPercent: dec("0.05")}
	svc := newTestCatalogService(
		&fakeRateRepo{rate: rate},
		&fakePolicyRepo{policies: []model.ShippingPolicy{fixturePolicy()}},
	)

	snap, err := svc.LoadSnapshot(context.Background())
	require.NoError(t, err)

	assert.False(t, snap.Degraded)
	assert.True(t, snap.Rate.Safe().Equal(dec("157.5")))
	assert.Len(t, snap.Policies, 1)
	// Only the top three hinted chapters are kept, best first.
	assert.Equal(t, []string{"95", "49", "97"}, snap.CategoryChapters["Pokemon"])
}

func TestLoadSnapshotCachesResult(t *testing.T) {
	policies := &fakePolicyRepo{policies: []model.ShippingPolicy{fixturePolicy()}}
	svc := newTestCatalogService(&fakeRateRepo{rate: &model.ExchangeRate{Spot: dec("150")}}, policies)

	first, err := svc.LoadSnapshot(context.Background())
	require.NoError(t, err)

	// A catalog change is invisible until the cache is invalidated.
	policies.policies = nil
	second, err := svc.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	svc.Invalidate()
	_, err = svc.LoadSnapshot(context.Background())
	require.Error(t, err)
}

func TestLoadSnapshotRateFallback(t *testing.T) {
	// Rate source down: the documented fallback (spot 150, 5% buffer, safe
	// 157.5) applies and the snapshot is marked degraded.
	svc := newTestCatalogService(
		&fakeRateRepo{err: errors.New("connection refused")},
		&fakePolicyRepo{policies: []model.ShippingPolicy{fixturePolicy()}},
	)

	snap, err := svc.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Degraded)
	assert.True(t, snap.Rate.Spot.Equal(dec("150")))
	assert.True(t, snap.Rate.Safe().Equal(dec("157.5")))
}

func TestLoadSnapshotCorruptRateFallsBack(t *testing.T) {
	// A rate row that loads with a non-positive safe rate is as unusable as a
	// failed fetch: fall back instead of letting it reach the division.
	svc := newTestCatalogService(
		&fakeRateRepo{rate: &model.ExchangeRate{Spot: dec("0"), BufferPercent: dec("0.05")}},
		&fakePolicyRepo{policies: []model.ShippingPolicy{fixturePolicy()}},
	)

	snap, err := svc.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Degraded)
	assert.True(t, snap.Rate.Safe().Equal(dec("157.5")))
}

func TestLoadSnapshotEmptyPoliciesFatal(t *testing.T) {
	svc := newTestCatalogService(
		&fakeRateRepo{rate: &model.ExchangeRate{Spot: dec("150")}},
		&fakePolicyRepo{},
	)

	_, err := svc.LoadSnapshot(context.Background())
	require.Error(t, err)
	assert.Equal(t, pricing.ErrExternalDataUnavailable, pricing.KindOf(err))
}

func TestLoadSnapshotPolicyFetchFatal(t *testing.T) {
	svc := newTestCatalogService(
		&fakeRateRepo{rate: &model.ExchangeRate{Spot: dec("150")}},
		&fakePolicyRepo{err: errors.New("connection refused")},
	)

	_, err := svc.LoadSnapshot(context.Background())
	require.Error(t, err)
	assert.Equal(t, pricing.ErrExternalDataUnavailable, pricing.KindOf(err))
}

package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossborder/internal/model"
)

func TestEstimatePrice(t *testing.T) {
	// 15000 / 155 * 1.3
	got := EstimatePrice(dec("15000"), dec("155"), dec("1.3"))
	assert.True(t, got.Sub(dec("125.80")).Abs().LessThan(dec("0.01")), "got %s", got)

	assert.True(t, EstimatePrice(dec("100"), dec("0"), dec("1.3")).IsZero())
}

func TestSelectBandBoundaries(t *testing.T) {
	s := NewSelector(testSnapshot(), DefaultOptions())

	tests := []struct {
		name       string
		price      string
		wantPolicy string
	}{
		{"below duty-paid window", "149.99", "unpaid-light"},
		{"window lower edge is duty-paid", "150.00", "paid-low"},
		{"low band upper edge", "250.00", "paid-low"},
		{"just above the split is high band", "250.01", "paid-high"},
		{"window upper edge is duty-paid", "450.00", "paid-high"},
		{"above duty-paid window", "450.01", "unpaid-light"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := s.Select(dec("1"), dec(tt.price))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPolicy, p.Name)
		})
	}
}

func TestSelectWeightRange(t *testing.T) {
	s := NewSelector(testSnapshot(), DefaultOptions())

	p, err := s.Select(dec("2"), dec("100"))
	require.NoError(t, err)
	// 2kg sits on the boundary of unpaid-light (0-2) and unpaid-mid (2-10);
	// catalog order decides.
	assert.Equal(t, "unpaid-light", p.Name)

	p, err = s.Select(dec("15"), dec("100"))
	require.NoError(t, err)
	assert.Equal(t, "unpaid-heavy", p.Name)
}

func TestSelectFirstMatchWins(t *testing.T) {
	// Deliberately overlapping catalog entries: the first in catalog order is
	// always chosen, regardless of which would be cheaper.
	snap := &Snapshot{
		Policies: []model.ShippingPolicy{
			policy("first", model.BasisDutyUnpaid, nil, "0", "5", 1, zone("US", "20", "18", nil, "2")),
			policy("second", model.BasisDutyUnpaid, nil, "0", "5", 2, zone("US", "10", "8", nil, "1")),
		},
	}
	s := NewSelector(snap, DefaultOptions())

	for i := 0; i < 5; i++ {
		p, err := s.Select(dec("3"), dec("50"))
		require.NoError(t, err)
		assert.Equal(t, "first", p.Name)
	}
}

func TestSelectSkipsInactive(t *testing.T) {
	snap := testSnapshot()
	snap.Policies[0].Active = false
	s := NewSelector(snap, DefaultOptions())

	// unpaid-light is inactive and unpaid-mid only starts at 2kg, so nothing
	// covers 1kg anymore.
	_, err := s.Select(dec("1"), dec("50"))
	require.Error(t, err)
	assert.Equal(t, ErrLookupNotFound, KindOf(err))
}

func TestSelectNoMatch(t *testing.T) {
	s := NewSelector(testSnapshot(), DefaultOptions())

	_, err := s.Select(dec("99"), dec("50"))
	require.Error(t, err)
	assert.Equal(t, ErrLookupNotFound, KindOf(err))
	assert.NotEmpty(t, err.(*Error).Suggestion)
}

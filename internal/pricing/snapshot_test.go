package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossborder/internal/model"
)

func TestSnapshotValidate(t *testing.T) {
	assert.NoError(t, testSnapshot().Validate())
}

func TestSnapshotValidateRejectsUnusableRate(t *testing.T) {
	// A rate row that loads but derives a non-positive safe rate is a
	// batch-fatal precondition, same as an empty policy catalog.
	for _, rate := range []model.ExchangeRate{
		{Spot: decimal.Zero, BufferPercent: dec("0.05")},
		{Spot: dec("150"), BufferPercent: dec("-1")},
		{Spot: dec("-150"), BufferPercent: dec("0.05")},
	} {
		snap := testSnapshot()
		snap.Rate = rate

		err := snap.Validate()
		require.Error(t, err, "rate spot %s buffer %s", rate.Spot, rate.BufferPercent)
		assert.Equal(t, ErrExternalDataUnavailable, KindOf(err))
	}
}

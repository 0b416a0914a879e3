package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crossborder/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

// testSnapshot builds the fixture catalog used across the engine tests:
// a JPY->USD rate (spot 150, 5% buffer, safe 157.5), duty-unpaid policies for
// three weight ranges, duty-paid LOW/HIGH band policies, one margin tier
// (25% default, 15% min, 40% max, $5 absolute floor) and a 13% + $0.35
// marketplace fee.
func testSnapshot() *Snapshot {
	return &Snapshot{
		Rate: model.ExchangeRate{
			BaseCurrency:  "USD",
			QuoteCurrency: "JPY",
			Spot:          dec("150"),
			BufferPercent: dec("0.05"),
		},
		Policies: []model.ShippingPolicy{
			policy("unpaid-light", model.BasisDutyUnpaid, nil, "0", "2", 1, zone("US", "15", "12", nil, "2")),
			policy("unpaid-mid", model.BasisDutyUnpaid, nil, "2", "10", 2, zone("US", "32", "28", nil, "3")),
			policy("unpaid-heavy", model.BasisDutyUnpaid, nil, "10", "30", 3, zone("US", "95", "80", nil, "5")),
			policy("paid-low", model.BasisDutyPaid, strPtr(model.BandLow), "0", "10", 4, zone("US", "24", "20", decPtr("6"), "3")),
			policy("paid-high", model.BasisDutyPaid, strPtr(model.BandHigh), "0", "10", 5, zone("US", "30", "25", decPtr("8"), "3")),
		},
		Margins: []model.MarginSetting{
			{
				ID:                uuid.New(),
				Tier:              "standard",
				DefaultMargin:     dec("0.25"),
				MinMargin:         dec("0.15"),
				MaxMargin:         dec("0.40"),
				MinAbsoluteProfit: dec("5"),
				Active:            true,
			},
		},
		Fees: []model.MarketplaceFee{
			{
				ID:                uuid.New(),
				Category:          model.FeeCategoryDefault,
				FeeRate:           dec("0.13"),
				FixedInsertionFee: dec("0.35"),
			},
			{
				ID:                uuid.New(),
				Category:          "electronics",
				FeeRate:           dec("0.13"),
				FeeCap:            decPtr("20"),
				FixedInsertionFee: dec("0.35"),
			},
		},
		TariffCodes: []model.TariffCode{
			tariff("4202.92", "trunks, suitcases and similar containers, of leather or composition leather", "42", "0.045", true, "0.075"),
			tariff("9504.40", "playing cards, including trading card game cards and decks", "95", "0", false, "0"),
			tariff("9504.90", "other", "95", "0.02", false, "0"),
			tariff("9503.00", "tricycles, scooters and similar wheeled toys; dolls and other toys", "95", "0", false, "0"),
			tariff("6110.20", "sweaters, pullovers and similar articles, knitted, of cotton", "61", "0.165", false, "0"),
		},
		CategoryChapters: map[string][]string{
			"Pokemon": {"95"},
			"Fashion": {"61", "42"},
		},
	}
}

func policy(name, basis string, band *string, wMin, wMax string, sortOrder int, zones ...model.ZoneRate) model.ShippingPolicy {
	return model.ShippingPolicy{
		ID:           uuid.New(),
		Name:         name,
		PricingBasis: basis,
		PriceBand:    band,
		WeightMinKg:  dec(wMin),
		WeightMaxKg:  dec(wMax),
		SortOrder:    sortOrder,
		Active:       true,
		Zones:        zones,
	}
}

func zone(code, display, actual string, handlingPaid *decimal.Decimal, handlingUnpaid string) model.ZoneRate {
	return model.ZoneRate{
		ID:                    uuid.New(),
		ZoneCode:              code,
		DisplayShippingCost:   dec(display),
		ActualShippingCost:    dec(actual),
		HandlingFeeDutyPaid:   handlingPaid,
		HandlingFeeDutyUnpaid: dec(handlingUnpaid),
	}
}

func tariff(code, description, chapter, baseRate string, extraFlag bool, extraRate string) model.TariffCode {
	return model.TariffCode{
		ID:              uuid.New(),
		Code:            code,
		Description:     description,
		BaseDutyRate:    dec(baseRate),
		ExtraTariffFlag: extraFlag,
		ExtraTariffRate: dec(extraRate),
		ChapterCode:     chapter,
	}
}
